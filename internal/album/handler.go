package album

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fotofolio/service/internal/response"
)

// Handler holds HTTP handlers for album endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new album Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type albumSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// List godoc
//
//	@Summary		List albums
//	@Description	Returns every album's slug and title. Admin access required.
//	@Tags			albums
//	@Produce		json
//	@Success		200	{object}	map[string][]albumSummary
//	@Failure		403	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/list-albums [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	out := make([]albumSummary, 0, len(albums))
	for _, a := range albums {
		out = append(out, albumSummary{Slug: a.Slug, Title: a.Title})
	}
	response.OK(w, map[string][]albumSummary{"albums": out})
}

// Get godoc
//
//	@Summary		Get an album
//	@Description	Returns the album and its photos with resolved public URLs.
//	@Tags			albums
//	@Produce		json
//	@Param			slug	path		string	true	"Album slug"
//	@Success		200		{object}	map[string]Page
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/albums/{slug} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.svc.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "album not found")
			return
		}
		response.InternalError(w, err.Error())
		return
	}
	response.OK(w, map[string]*Page{"album": page})
}
