// Package handler implements the HTTP handlers for the Basket API.
// All handlers are methods on Server; routes are declared in Routes.
// Methods are split into domain-specific files (health.go, basket.go) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/healthri/basket-api/internal/domain"
)

// BasketServicer defines the business operations the basket handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type BasketServicer interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Basket, error)
	GetBySlug(ctx context.Context, ownerID uuid.UUID, slug string) (domain.Basket, error)
	Create(ctx context.Context, ownerID uuid.UUID, name string, isDefault bool, customSlug string) (domain.Basket, error)
	Rename(ctx context.Context, ownerID uuid.UUID, slug, newName string) (domain.Basket, error)
	Archive(ctx context.Context, ownerID uuid.UUID, slug string) error
	Restore(ctx context.Context, ownerID uuid.UUID, slug string) error
	Delete(ctx context.Context, ownerID uuid.UUID, slug string) error
	Clear(ctx context.Context, ownerID uuid.UUID, slug string) error
	AddItem(ctx context.Context, ownerID uuid.UUID, slug string, itemID uuid.UUID, source domain.Source) (domain.Basket, error)
	RemoveItem(ctx context.Context, ownerID uuid.UUID, slug string, itemID uuid.UUID, source domain.Source) error
	AuditTrail(ctx context.Context, ownerID uuid.UUID, slug string) ([]domain.AuditEntry, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	baskets BasketServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(baskets BasketServicer) *Server {
	return &Server{baskets: baskets}
}

// Routes registers the basket endpoints on r. The caller is responsible
// for wrapping r (or the returned subtree) with the auth middleware —
// every route here assumes an authenticated user in the request context.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1/baskets", func(r chi.Router) {
		r.Get("/", s.ListBaskets)
		r.Post("/", s.CreateBasket)
		r.Route("/{slug}", func(r chi.Router) {
			r.Get("/", s.GetBasket)
			r.Delete("/", s.DeleteBasket)
			r.Put("/rename", s.RenameBasket)
			r.Post("/archive", s.ArchiveBasket)
			r.Post("/restore", s.RestoreBasket)
			r.Post("/items", s.AddItem)
			r.Delete("/items", s.ClearBasket)
			r.Delete("/items/{itemID}", s.RemoveItem)
			r.Get("/audit", s.GetAuditTrail)
		})
	})
}

// HealthRoutes registers the unauthenticated endpoints.
func (s *Server) HealthRoutes(r chi.Router) {
	r.Get("/healthz", s.Health)
}
