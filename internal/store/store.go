package store

import (
	"context"

	"github.com/crossvet/crossvet/internal/models"
)

// ReviewListFilter specifies filters for listing review records.
type ReviewListFilter struct {
	Strategy        models.Strategy
	GenerationModel string
	Limit           int
}

// Store defines the persistence interface for review history.
type Store interface {
	CreateReview(ctx context.Context, r *models.ReviewRecord) error
	GetReview(ctx context.Context, id string) (*models.ReviewRecord, error)
	ListReviews(ctx context.Context, filter ReviewListFilter) ([]*models.ReviewRecord, error)
	DeleteReview(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}
