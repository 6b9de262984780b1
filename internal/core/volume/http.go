// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package volume

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/middleware"
	requestutil "github.com/taibuivan/libris/internal/platform/request"
	"github.com/taibuivan/libris/internal/platform/respond"
	"github.com/taibuivan/libris/internal/platform/sec"
	"github.com/taibuivan/libris/pkg/uuid"
)

// # Handler Implementation

// Handler implements the HTTP layer for volume registration and discovery.
type Handler struct {
	service   *Service
	registrar *Registrar
}

// NewHandler constructs a new volume [Handler].
func NewHandler(service *Service, registrar *Registrar) *Handler {
	return &Handler{service: service, registrar: registrar}
}

// RegisterRoutes mounts the volume endpoints on router.
//
// # Routing Strategy
//
//   - Discovery (Public): lookup by ID or ISBN, substring searches.
//   - Registration (Librarian+): members may read and favorite, but only
//     librarians and admins add volumes to the catalog.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.search)
	router.Get("/isbn/{isbn}", handler.getByISBN)
	router.Get("/{id}", handler.get)

	router.With(middleware.RequireRole(sec.RoleLibrarian)).Post("/", handler.register)
}

/*
POST /api/v1/volumes.

Request: {"isbn": "978-0-439-55493-0"}
Response: 201 with the registered volume.
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var body RegisterRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.registrar.Register(request.Context(), body.ISBN)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, volume)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	volumeID := requestutil.Param(request, "id")
	if !uuid.Valid(volumeID) {
		respond.Error(writer, request, apperr.NotFound("Volume"))
		return
	}

	volume, err := handler.service.FindByID(request.Context(), volumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, volume)
}

func (handler *Handler) getByISBN(writer http.ResponseWriter, request *http.Request) {
	volume, err := handler.service.FindByISBN(request.Context(), requestutil.Param(request, "isbn"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, volume)
}

/*
GET /api/v1/volumes?title=|author=|category=.

Exactly one criterion must be given.
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	criteria := map[string]string{}
	for _, field := range []string{FieldTitle, FieldAuthor, FieldCategory} {
		if request.URL.Query().Has(field) {
			criteria[field] = requestutil.Query(request, field)
		}
	}

	if len(criteria) != 1 {
		respond.Error(writer, request, apperr.InvalidUserInput("Exactly one of 'title', 'author' or 'category' is required"))
		return
	}

	var (
		volumes []*Volume
		err     error
	)
	switch {
	case request.URL.Query().Has(FieldTitle):
		volumes, err = handler.service.SearchByTitle(request.Context(), criteria[FieldTitle])
	case request.URL.Query().Has(FieldAuthor):
		volumes, err = handler.service.SearchByAuthor(request.Context(), criteria[FieldAuthor])
	default:
		volumes, err = handler.service.SearchByCategory(request.Context(), criteria[FieldCategory])
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, volumes)
}
