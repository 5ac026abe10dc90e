// Package handler exposes the registry over HTTP.
package handler

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registru/internal/person/models"
	"registru/internal/person/query"
	"registru/internal/person/service"
	dErrors "registru/pkg/domain-errors"
	"registru/pkg/platform/httputil"
	"registru/pkg/requestcontext"
)

// Service defines the registry operations the handler depends on.
type Service interface {
	Create(ctx context.Context, cmd service.CreatePersonCommand) (*models.Person, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Person, error)
	List(ctx context.Context, params query.Params) (*service.ListResult, error)
	Update(ctx context.Context, id uuid.UUID, cmd service.UpdatePersonCommand) (*models.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachPhoto(ctx context.Context, id uuid.UUID, r io.Reader, originalName string) (*models.Person, error)
	OpenPhoto(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
}

// Handler handles the /api/people endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new person Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register registers the person routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/people", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/photo", h.handleUploadPhoto)
			r.Get("/photo", h.handleGetPhoto)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := query.Params{
		Q:        r.URL.Query().Get("q"),
		Sort:     r.URL.Query().Get("sort"),
		Dir:      r.URL.Query().Get("dir"),
		Page:     intParam(r, "page"),
		PageSize: intParam(r, "size"),
	}

	res, err := h.service.List(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "list people", "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewListPeopleResponse(res, requestcontext.Now(ctx)))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Create(ctx, req.ToCommand())
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "create person", "request_id", requestID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, NewPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Update(ctx, id, req.ToCommand())
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) && !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "update person", "request_id", requestID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{OK: true})
}

func (h *Handler) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("id_photo")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id_photo file is required"))
		return
	}
	defer file.Close()

	p, err := h.service.AttachPhoto(ctx, id, file, header.Filename)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, NewPersonResponse(p, requestcontext.Now(ctx)))
}

func (h *Handler) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rc, name, err := h.service.OpenPhoto(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

// pathID parses the {id} path segment. An unparseable id behaves like a
// missing record.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "person not found"))
		return uuid.Nil, false
	}
	return id, true
}

func intParam(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
