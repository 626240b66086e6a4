package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"catalog/internal/catalog/models"
	"catalog/internal/catalog/service"
	"catalog/internal/catalog/store"
	"catalog/internal/platform/middleware"
	"catalog/internal/transport/http/shared"
)

//go:generate mockgen -source=handlers_items.go -destination=mocks/service_mocks.go -package=mocks Service

// Service is the pipeline surface the REST layer depends on.
type Service interface {
	Create(ctx context.Context, candidate *models.Item) service.Result
	Update(ctx context.Context, candidate *models.Item, versionToken string) service.Result
	Delete(ctx context.Context, id string) service.Result
	FindByID(ctx context.Context, id string) (*models.Item, error)
	Find(ctx context.Context, filter models.Filter) ([]*models.Item, error)
}

// ItemHandler is the thin REST layer over the mutation pipeline. It owns
// header conventions (If-Match, If-None-Match, ETag, Location) and nothing
// else; every business decision lives behind the Service interface.
type ItemHandler struct {
	logger  *slog.Logger
	service Service
}

func NewItemHandler(svc Service, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{logger: logger, service: svc}
}

// Register mounts the item routes on the given router.
func (h *ItemHandler) Register(r chi.Router) {
	r.Route("/items", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *ItemHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var candidate models.Item
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.logger.WarnContext(ctx, "invalid create request body",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteOutcome(w, service.Outcome{
			Category: service.CategoryClientError,
			Detail:   "invalid request body",
		})
		return
	}
	// Identity and version are server-assigned on create.
	candidate.ID = ""
	candidate.Version = 0

	outcome := service.Translate(h.service.Create(ctx, &candidate))
	if outcome.Category != service.CategoryCreated {
		shared.WriteOutcome(w, outcome)
		return
	}

	w.Header().Set("Location", "/items/"+outcome.ID)
	w.Header().Set("ETag", etag(0))
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"id": outcome.ID})
}

func (h *ItemHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	item, err := h.service.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(shared.ErrorBody{Error: "not-found", Message: "item does not exist"})
			return
		}
		h.logger.ErrorContext(ctx, "failed to load item",
			"request_id", middleware.GetRequestID(ctx),
			"id", id,
			"error", err.Error(),
		)
		shared.WriteOutcome(w, service.Outcome{Category: service.CategoryServerFault, Detail: "internal error"})
		return
	}

	// Conditional read: a matching token short-circuits with 304.
	if token, ok := versionToken(r.Header.Get("If-None-Match")); ok && token == item.Version {
		w.Header().Set("ETag", etag(item.Version))
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag(item.Version))
	shared.WriteJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := models.Filter{Name: r.URL.Query().Get("name")}
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Tags = append(filter.Tags, models.Tag(t))
			}
		}
	}

	items, err := h.service.Find(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list items",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteOutcome(w, service.Outcome{Category: service.CategoryServerFault, Detail: "internal error"})
		return
	}
	if items == nil {
		items = []*models.Item{}
	}
	shared.WriteJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var candidate models.Item
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		h.logger.WarnContext(ctx, "invalid update request body",
			"request_id", middleware.GetRequestID(ctx),
			"id", id,
			"error", err.Error(),
		)
		shared.WriteOutcome(w, service.Outcome{
			Category: service.CategoryClientError,
			Detail:   "invalid request body",
		})
		return
	}
	candidate.ID = id

	token := trimETag(r.Header.Get("If-Match"))
	outcome := service.Translate(h.service.Update(ctx, &candidate, token))
	if outcome.Category != service.CategoryNoContent {
		shared.WriteOutcome(w, outcome)
		return
	}

	w.Header().Set("ETag", etag(outcome.Version))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	outcome := service.Translate(h.service.Delete(r.Context(), chi.URLParam(r, "id")))
	if outcome.Category != service.CategoryNoContent {
		shared.WriteOutcome(w, outcome)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// etag renders a version counter as a quoted entity tag.
func etag(version int64) string {
	return `"` + strconv.FormatInt(version, 10) + `"`
}

// trimETag strips quotes and a weak-validator prefix from a conditional
// header, leaving the raw token for the pipeline to validate.
func trimETag(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "W/")
	return strings.Trim(raw, `"`)
}

// versionToken parses a conditional header into a version counter.
func versionToken(raw string) (int64, bool) {
	trimmed := trimETag(raw)
	if trimmed == "" {
		return 0, false
	}
	version, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, false
	}
	return version, true
}
