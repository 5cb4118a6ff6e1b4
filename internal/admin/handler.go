// internal/admin/handler.go
//
// Tenant provisioning API.
//
// Context
// -------
// The apex-only surface behind /api/tenants: list, create, inspect,
// update, and soft-delete family workspaces.  Every mutation that
// touches subdomain, active, or existence invalidates the resolver's
// cache synchronously, keyed by the OLD subdomain (and the new one on a
// rename), before the response is written.  A client polling right
// after a 200 therefore observes fresh routing within the bounded
// staleness window.
//
// Deletion is soft: the row stays with active = false, which every
// consumer of resolution treats as nonexistent.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brainplaykids/platform/internal/tenant"
)

var validate = validator.New()

// Invalidator is the slice of tenant.Resolver the handlers need.
type Invalidator interface {
	Invalidate(ctx context.Context, subdomain string)
}

// Handler serves the tenant provisioning endpoints.
type Handler struct {
	store tenant.Store
	inv   Invalidator
}

// NewHandler wires the store and cache invalidator.
func NewHandler(store tenant.Store, inv Invalidator) *Handler {
	return &Handler{store: store, inv: inv}
}

// Routes mounts the provisioning API on a fresh chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

type createRequest struct {
	Subdomain string  `json:"subdomain" validate:"required,min=2,subdomain"`
	Name      string  `json:"name"      validate:"required,min=2"`
	Emoji     *string `json:"emoji,omitempty"`
}

type updateRequest struct {
	Subdomain *string `json:"subdomain,omitempty" validate:"omitempty,min=2,subdomain"`
	Name      *string `json:"name,omitempty"      validate:"omitempty,min=2"`
	Emoji     *string `json:"emoji,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func init() {
	// Subdomains are URL-safe lowercase labels: letters, digits, hyphens.
	_ = validate.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, c := range s {
			if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
				return false
			}
		}
		return s != ""
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.store.All(r.Context())
	if err != nil {
		zap.S().Errorw("list tenants failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tenants": tenants})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	req.Subdomain = strings.ToLower(strings.TrimSpace(req.Subdomain))
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation error")
		return
	}

	if _, err := h.store.BySubdomain(r.Context(), req.Subdomain); err == nil {
		writeError(w, http.StatusBadRequest, "subdomain already taken")
		return
	} else if !errors.Is(err, tenant.ErrNotFound) {
		zap.S().Errorw("subdomain uniqueness check failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	created, err := h.store.Create(r.Context(), req.Subdomain, req.Name, req.Emoji)
	if err != nil {
		zap.S().Errorw("create tenant failed", "subdomain", req.Subdomain, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tenant": created})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		zap.S().Errorw("get tenant failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tenant": t})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.Subdomain != nil {
		sd := strings.ToLower(strings.TrimSpace(*req.Subdomain))
		req.Subdomain = &sd
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation error")
		return
	}

	// The pre-image supplies the old subdomain for invalidation.
	before, err := h.store.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		zap.S().Errorw("load tenant failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	updated, err := h.store.Update(r.Context(), id, tenant.UpdateFields{
		Subdomain: req.Subdomain,
		Name:      req.Name,
		Emoji:     req.Emoji,
		Active:    req.Active,
	})
	if err != nil {
		zap.S().Errorw("update tenant failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Invalidate before responding: old key always, new key on rename.
	h.inv.Invalidate(r.Context(), before.Subdomain)
	if updated.Subdomain != before.Subdomain {
		h.inv.Invalidate(r.Context(), updated.Subdomain)
	}

	writeJSON(w, http.StatusOK, map[string]any{"tenant": updated})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	before, err := h.store.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		zap.S().Errorw("load tenant failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if _, err := h.store.Deactivate(r.Context(), id); err != nil {
		zap.S().Errorw("deactivate tenant failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.inv.Invalidate(r.Context(), before.Subdomain)
	writeJSON(w, http.StatusOK, map[string]any{"message": "tenant deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
