package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/healthri/basket-api/internal/auth"
	"github.com/healthri/basket-api/internal/domain"
)

// createBasketRequest is the body for POST /api/v1/baskets.
type createBasketRequest struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	// Slug, when supplied, must already be in normalized form; it is
	// validated, not corrected.
	Slug string `json:"slug,omitempty"`
}

// renameBasketRequest is the body for PUT /api/v1/baskets/{slug}/rename.
type renameBasketRequest struct {
	Name string `json:"name"`
}

// addItemRequest is the body for POST /api/v1/baskets/{slug}/items.
type addItemRequest struct {
	ItemID uuid.UUID `json:"item_id"`
	Source string    `json:"source,omitempty"`
}

// ListBaskets handles GET /api/v1/baskets.
// Deleted baskets are excluded from the listing.
func (s *Server) ListBaskets(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	baskets, err := s.baskets.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, baskets)
}

// CreateBasket handles POST /api/v1/baskets.
func (s *Server) CreateBasket(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	var req createBasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		requestError(w, "name is required")
		return
	}

	basket, err := s.baskets.Create(r.Context(), ownerID, req.Name, req.IsDefault, req.Slug)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, basket)
}

// GetBasket handles GET /api/v1/baskets/{slug}.
func (s *Server) GetBasket(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	basket, err := s.baskets.GetBySlug(r.Context(), ownerID, chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, basket)
}

// RenameBasket handles PUT /api/v1/baskets/{slug}/rename.
// The response carries the updated basket — the slug may have changed.
func (s *Server) RenameBasket(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	var req renameBasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	basket, err := s.baskets.Rename(r.Context(), ownerID, chi.URLParam(r, "slug"), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, basket)
}

// ArchiveBasket handles POST /api/v1/baskets/{slug}/archive.
func (s *Server) ArchiveBasket(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	if err := s.baskets.Archive(r.Context(), ownerID, chi.URLParam(r, "slug")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestoreBasket handles POST /api/v1/baskets/{slug}/restore.
func (s *Server) RestoreBasket(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	if err := s.baskets.Restore(r.Context(), ownerID, chi.URLParam(r, "slug")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBasket handles DELETE /api/v1/baskets/{slug}.
// Deleting a default basket returns 409.
func (s *Server) DeleteBasket(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	if err := s.baskets.Delete(r.Context(), ownerID, chi.URLParam(r, "slug")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearBasket handles DELETE /api/v1/baskets/{slug}/items.
func (s *Server) ClearBasket(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	if err := s.baskets.Clear(r.Context(), ownerID, chi.URLParam(r, "slug")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/v1/baskets/{slug}/items.
// Adding an item that is already a member returns 409; an item unknown to
// the catalog returns 404.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if req.ItemID == uuid.Nil {
		requestError(w, "item_id is required")
		return
	}

	basket, err := s.baskets.AddItem(r.Context(), ownerID, chi.URLParam(r, "slug"), req.ItemID, parseSource(req.Source))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, basket)
}

// RemoveItem handles DELETE /api/v1/baskets/{slug}/items/{itemID}.
// The originating surface comes from the optional ?source= query parameter
// (DELETE requests carry no body). Removing an item that was never a member
// still returns 204 — removal is idempotent, unlike AddItem's strict
// duplicate rejection.
func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		requestError(w, "item id must be a valid UUID")
		return
	}

	source := parseSource(r.URL.Query().Get("source"))
	if err := s.baskets.RemoveItem(r.Context(), ownerID, chi.URLParam(r, "slug"), itemID, source); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAuditTrail handles GET /api/v1/baskets/{slug}/audit.
func (s *Server) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)

	entries, err := s.baskets.AuditTrail(r.Context(), ownerID, chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// callerID returns the authenticated user's ID from the request context.
// Routes registered through Routes sit behind the auth middleware, so a
// missing ID is a programming error; uuid.Nil then matches no rows and
// every lookup comes back not-found.
func callerID(r *http.Request) uuid.UUID {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

// parseSource maps the optional request source to a known value,
// defaulting to the catalog page.
func parseSource(s string) domain.Source {
	if domain.Source(s) == domain.SourceUserPage {
		return domain.SourceUserPage
	}
	return domain.SourceCatalogPage
}
