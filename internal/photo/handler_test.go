package photo_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotofolio/service/internal/auth"
	"github.com/fotofolio/service/internal/photo"
	"github.com/fotofolio/service/internal/response"
)

const adminSecret = "s3cret"

// countingVerifier is a TokenVerifier that records how often it is called.
type countingVerifier struct {
	identity *auth.Identity
	err      error
	calls    int
}

func (v *countingVerifier) Verify(string) (*auth.Identity, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

type uploadFixture struct {
	store    *fakeStore
	repo     *fakeRepo
	verifier *countingVerifier
	router   http.Handler
}

func newFixture(t *testing.T, admin *auth.Admin, maxBytes int64, allowedTypes []string) *uploadFixture {
	t.Helper()
	f := &uploadFixture{store: newFakeStore(), repo: &fakeRepo{}}
	svc := photo.NewService(f.repo, f.store)
	h := photo.NewHandler(svc, admin, maxBytes, allowedTypes)

	r := chi.NewRouter()
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})
	r.Post("/upload-photo", h.Upload)
	f.router = r
	return f
}

// secretFixture grants access via the static secret header.
func secretFixture(t *testing.T) *uploadFixture {
	t.Helper()
	verifier := &countingVerifier{}
	f := newFixture(t, auth.NewAdmin(adminSecret, nil, nil, verifier), 15*1024*1024, nil)
	f.verifier = verifier
	return f
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields []formField, file *formFile) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f.name, f.value))
	}
	if file != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postUpload(t *testing.T, f *uploadFixture, fields []formField, file *formFile, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, file)
	req := httptest.NewRequest(http.MethodPost, "/upload-photo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(auth.SecretHeader, adminSecret)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func validFields() []formField {
	return []formField{
		{"album_slug", "italia"},
		{"alt", "Roma at dusk"},
		{"caption", "Trastevere"},
		{"location", "Roma"},
		{"taken_at", "12/06/2024"},
	}
}

func validFile() *formFile {
	return &formFile{name: "roma.jpg", contentType: "image/jpeg", data: []byte("jpeg-bytes")}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestUploadSuccess(t *testing.T) {
	f := secretFixture(t)
	rec := postUpload(t, f, validFields(), validFile(), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		OK    bool `json:"ok"`
		Photo struct {
			ID        string  `json:"id"`
			ImagePath string  `json:"image_path"`
			Location  *string `json:"location"`
			TakenAt   *string `json:"taken_at"`
			PublicURL string  `json:"public_url"`
		} `json:"photo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.NotEmpty(t, body.Photo.ID)
	assert.Contains(t, body.Photo.ImagePath, "albums/italia/")
	require.NotNil(t, body.Photo.TakenAt)
	assert.Equal(t, "2024-06-12", *body.Photo.TakenAt, "DD/MM/YYYY should be normalized")
	require.NotNil(t, body.Photo.Location)
	assert.Equal(t, "Roma", *body.Photo.Location)
	assert.Equal(t, "https://cdn.example.test/"+body.Photo.ImagePath, body.Photo.PublicURL)

	assert.Zero(t, f.verifier.calls, "matching admin secret must bypass the identity verifier")
}

func TestUploadWrongMethod(t *testing.T) {
	f := secretFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/upload-photo", nil)
	req.Header.Set(auth.SecretHeader, adminSecret)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeError(t, rec))
}

func TestUploadNonMultipart(t *testing.T) {
	f := secretFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/upload-photo", bytes.NewBufferString(`{"album_slug":"italia"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.SecretHeader, adminSecret)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Expected multipart/form-data", decodeError(t, rec))
}

func TestUploadMissingAlbumSlug(t *testing.T) {
	f := secretFixture(t)
	rec := postUpload(t, f, []formField{{"album_slug", "  "}}, validFile(), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "album_slug is required", decodeError(t, rec))
	assert.Empty(t, f.store.uploads, "no object may be written on validation failure")
}

func TestUploadMissingFile(t *testing.T) {
	f := secretFixture(t)
	rec := postUpload(t, f, validFields(), nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file is required", decodeError(t, rec))
	assert.Empty(t, f.store.uploads)
}

func TestUploadInvalidTakenAtFailsBeforeUpload(t *testing.T) {
	f := secretFixture(t)
	fields := []formField{{"album_slug", "italia"}, {"taken_at", "31/02/2024"}}
	rec := postUpload(t, f, fields, validFile(), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "YYYY-MM-DD")
	assert.Empty(t, f.store.uploads, "invalid date must be rejected before any storage write")
	assert.Empty(t, f.repo.inserts)
}

func TestUploadTakenAtFromQueryParam(t *testing.T) {
	f := secretFixture(t)
	body, contentType := multipartBody(t, []formField{{"album_slug", "italia"}}, validFile())
	req := httptest.NewRequest(http.MethodPost, "/upload-photo?taken_at=2024-06-12&location=Roma", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(auth.SecretHeader, adminSecret)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, f.repo.inserts, 1)
	require.NotNil(t, f.repo.inserts[0].TakenAt)
	assert.Equal(t, "2024-06-12", *f.repo.inserts[0].TakenAt)
	require.NotNil(t, f.repo.inserts[0].Location)
	assert.Equal(t, "Roma", *f.repo.inserts[0].Location)
}

func TestUploadFileTooLarge(t *testing.T) {
	verifier := &countingVerifier{}
	f := newFixture(t, auth.NewAdmin(adminSecret, nil, nil, verifier), 4, nil)
	rec := postUpload(t, f, validFields(), validFile(), nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, decodeError(t, rec), "File too large")
	assert.Empty(t, f.store.uploads)
}

func TestUploadUnsupportedMimeType(t *testing.T) {
	verifier := &countingVerifier{}
	f := newFixture(t, auth.NewAdmin(adminSecret, nil, nil, verifier), 15*1024*1024, []string{"image/jpeg"})
	file := &formFile{name: "shot.png", contentType: "image/png", data: []byte("png-bytes")}
	rec := postUpload(t, f, validFields(), file, nil)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "Unsupported type: image/png", decodeError(t, rec))
	assert.Empty(t, f.store.uploads)
}

func TestUploadInvalidBearerToken(t *testing.T) {
	verifier := &countingVerifier{err: auth.ErrInvalidToken}
	f := newFixture(t, auth.NewAdmin("", []string{"uid-1"}, nil, verifier), 15*1024*1024, nil)

	rec := postUpload(t, f, validFields(), validFile(), func(r *http.Request) {
		r.Header.Del(auth.SecretHeader)
		r.Header.Set("Authorization", "Bearer bad-token")
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeError(t, rec))
	assert.Empty(t, f.store.uploads)
}

func TestUploadEmptyAllowListsFailClosed(t *testing.T) {
	verifier := &countingVerifier{identity: &auth.Identity{UserID: "uid-1", Email: "me@example.com"}}
	f := newFixture(t, auth.NewAdmin("", nil, nil, verifier), 15*1024*1024, nil)

	rec := postUpload(t, f, validFields(), validFile(), func(r *http.Request) {
		r.Header.Del(auth.SecretHeader)
		r.Header.Set("Authorization", "Bearer good-token")
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, verifier.calls, "token should have been verified")
	assert.Empty(t, f.store.uploads)
}

func TestUploadNoCredentials(t *testing.T) {
	verifier := &countingVerifier{}
	f := newFixture(t, auth.NewAdmin(adminSecret, []string{"uid-1"}, nil, verifier), 15*1024*1024, nil)

	rec := postUpload(t, f, validFields(), validFile(), func(r *http.Request) {
		r.Header.Del(auth.SecretHeader)
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, verifier.calls)
	assert.Empty(t, f.store.uploads)
}

func TestUploadMissingColumnFallbackReturnsOK(t *testing.T) {
	f := secretFixture(t)
	f.repo.missingColumns = map[string]bool{"location": true}

	rec := postUpload(t, f, validFields(), validFile(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Photo struct {
			Location *string `json:"location"`
			TakenAt  *string `json:"taken_at"`
		} `json:"photo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Photo.Location, "dropped field must not be echoed as persisted")
	require.NotNil(t, body.Photo.TakenAt)
	assert.Equal(t, "2024-06-12", *body.Photo.TakenAt)
}

func TestUploadUnknownAlbum(t *testing.T) {
	f := secretFixture(t)
	f.repo.insertErr = photo.ErrAlbumNotFound

	rec := postUpload(t, f, validFields(), validFile(), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "album")
	require.Len(t, f.store.deleted, 1, "uploaded object must be cleaned up")
	assert.Empty(t, f.store.uploads)
}

func TestUploadInsertFailureReturns500(t *testing.T) {
	f := secretFixture(t)
	f.repo.insertErr = errors.New("database on fire")

	rec := postUpload(t, f, validFields(), validFile(), nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeError(t, rec), "database on fire")
	require.Len(t, f.store.deleted, 1)
}

func TestUploadAltIsOptional(t *testing.T) {
	f := secretFixture(t)
	rec := postUpload(t, f, []formField{{"album_slug", "italia"}}, validFile(), nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
