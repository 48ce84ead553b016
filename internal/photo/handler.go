package photo

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/fotofolio/service/internal/auth"
	"github.com/fotofolio/service/internal/response"
)

// multipartMemory is the in-memory buffer threshold for form parsing;
// larger files spill to disk.
const multipartMemory = 10 << 20

// Handler holds HTTP handlers for photo endpoints.
type Handler struct {
	svc          *Service
	admin        *auth.Admin
	maxBytes     int64
	allowedTypes []string
}

// NewHandler creates a new photo Handler.
func NewHandler(svc *Service, admin *auth.Admin, maxBytes int64, allowedTypes []string) *Handler {
	return &Handler{svc: svc, admin: admin, maxBytes: maxBytes, allowedTypes: allowedTypes}
}

type photoBody struct {
	ID        string  `json:"id"`
	ImagePath string  `json:"image_path"`
	Location  *string `json:"location,omitempty"`
	TakenAt   *string `json:"taken_at,omitempty"`
	PublicURL string  `json:"public_url"`
}

type uploadResponse struct {
	OK    bool      `json:"ok"`
	Photo photoBody `json:"photo"`
}

// Upload godoc
//
//	@Summary		Upload a photo
//	@Description	Stores the binary in the photos bucket under the album prefix and inserts its metadata record. Requires the admin secret header or an allow-listed bearer identity.
//	@Tags			photos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			X-Admin-Secret	header		string	false	"Static admin secret"
//	@Param			album_slug		formData	string	true	"Target album slug"
//	@Param			alt				formData	string	false	"Display text"
//	@Param			caption			formData	string	false	"Caption"
//	@Param			location		formData	string	false	"Capture location"
//	@Param			taken_at		formData	string	false	"Capture date (YYYY-MM-DD, DD/MM/YYYY, or ISO-8601)"
//	@Param			file			formData	file	true	"Image payload"
//	@Success		200				{object}	uploadResponse
//	@Failure		400				{object}	map[string]string
//	@Failure		401				{object}	map[string]string
//	@Failure		403				{object}	map[string]string
//	@Failure		413				{object}	map[string]string
//	@Failure		415				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/upload-photo [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// Authorization runs before any parsing or storage I/O.
	switch err := h.admin.Authorize(r); {
	case errors.Is(err, auth.ErrInvalidToken):
		response.Unauthorized(w, "Unauthorized")
		return
	case err != nil:
		response.Forbidden(w, "Forbidden")
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		response.BadRequest(w, "Expected multipart/form-data")
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		response.BadRequest(w, "Expected multipart/form-data")
		return
	}

	albumSlug := strings.TrimSpace(r.FormValue("album_slug"))
	if albumSlug == "" {
		response.BadRequest(w, "album_slug is required")
		return
	}

	in := UploadInput{
		AlbumSlug: albumSlug,
		Alt:       strings.TrimSpace(r.FormValue("alt")),
		Caption:   strings.TrimSpace(r.FormValue("caption")),
	}

	if loc := formOrQuery(r, "location"); loc != "" {
		in.Location = &loc
	}

	// taken_at is validated before the object is written so a bad date
	// never leaves an orphaned upload behind.
	if raw := formOrQuery(r, "taken_at"); raw != "" {
		normalized, err := NormalizeTakenAt(raw)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		in.TakenAt = &normalized
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		response.PayloadTooLarge(w, "File too large. Max "+strconv.FormatInt(h.maxBytes, 10)+" bytes.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if len(h.allowedTypes) > 0 && !containsString(h.allowedTypes, contentType) {
		response.UnsupportedMediaType(w, "Unsupported type: "+contentType)
		return
	}

	in.Filename = header.Filename
	in.ContentType = contentType
	in.Size = header.Size
	in.File = file

	result, err := h.svc.Upload(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			response.BadRequest(w, "album_slug does not match an existing album")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, uploadResponse{
		OK: true,
		Photo: photoBody{
			ID:        result.Photo.ID,
			ImagePath: result.Photo.ImagePath,
			Location:  result.Photo.Location,
			TakenAt:   result.Photo.TakenAt,
			PublicURL: result.PublicURL,
		},
	})
}

// Orphans godoc
//
//	@Summary		List orphaned objects
//	@Description	Reports stored objects no photo record references, left behind when a failed insert's cleanup also failed.
//	@Tags			photos
//	@Produce		json
//	@Success		200	{object}	map[string][]Orphan
//	@Failure		500	{object}	map[string]string
//	@Security		BearerAuth
//	@Router			/admin/orphans [get]
func (h *Handler) Orphans(w http.ResponseWriter, r *http.Request) {
	orphans, err := h.svc.Orphans(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	response.OK(w, map[string][]Orphan{"orphans": orphans})
}

// formOrQuery reads a value from the multipart form, falling back to the
// query string.
func formOrQuery(r *http.Request, key string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get(key))
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
