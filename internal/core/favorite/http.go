// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libris/internal/platform/middleware"
	requestutil "github.com/taibuivan/libris/internal/platform/request"
	"github.com/taibuivan/libris/internal/platform/respond"
)

// Handler exposes the caller's favorites and the public ranking.
type Handler struct {
	service *Service
}

// NewHandler constructs a new favorite [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the per-user endpoints (/me/favorites). All of them
// require an authenticated caller.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Get("/", handler.list)
		member.Get("/{volumeID}", handler.contains)
		member.Put("/{volumeID}", handler.add)
		member.Delete("/{volumeID}", handler.remove)
	})
}

// RegisterRankingRoutes mounts the public ranking on the volumes router.
func (handler *Handler) RegisterRankingRoutes(router chi.Router) {
	router.Get("/top", handler.top)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	volumes, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, volumes)
}

func (handler *Handler) contains(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	membership, err := handler.service.Contains(request.Context(), userID, requestutil.Param(request, "volumeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, membership)
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Add(request.Context(), userID, requestutil.Param(request, "volumeID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, requestutil.Param(request, "volumeID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// GET /api/v1/volumes/top?n=
func (handler *Handler) top(writer http.ResponseWriter, request *http.Request) {
	n, err := requestutil.QueryInt(request, FieldTopN, 0)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	volumes, err := handler.service.Top(request.Context(), n)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, volumes)
}
