// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libris/internal/platform/apperr"
	requestutil "github.com/taibuivan/libris/internal/platform/request"
	"github.com/taibuivan/libris/internal/platform/respond"
	"github.com/taibuivan/libris/pkg/pagination"
)

// Handler exposes one reference kind over HTTP. The server mounts one
// handler per kind (/authors, /categories).
type Handler struct {
	service *Service
	kind    Kind
}

func NewHandler(service *Service, kind Kind) *Handler {
	return &Handler{service: service, kind: kind}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public, read-only. Entities are only created by volume registration.
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.InvalidUserInput(err.Error()))
		return
	}

	filter := Filter{
		Query: requestutil.Query(request, FieldQuery),
	}

	entities, total, err := handler.service.Search(request.Context(), handler.kind, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entities, pagination.NewMeta(paginationParams, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	// Identities are SERIAL; anything outside int4 cannot exist.
	entityID, err := strconv.ParseInt(requestutil.Param(request, "id"), 10, 32)
	if err != nil {
		respond.Error(writer, request, apperr.NotFound(handler.kind.Label()))
		return
	}

	entity, err := handler.service.Get(request.Context(), handler.kind, int(entityID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}
