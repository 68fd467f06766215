package store

import (
	"context"
	"errors"

	"github.com/WanderingWalnut/Grantly/internal/model"
)

// ErrNotFound is returned by lookups, updates and deletes that match no row.
var ErrNotFound = errors.New("not found")

// OrganizationStore persists organization profiles keyed by snowflake ID.
// Create and Update overwrite the passed organization with the stored row so
// callers see the database timestamps.
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	// List returns up to limit organizations with IDs above afterID in ID
	// order. Pass 0 for the first page.
	List(ctx context.Context, afterID int64, limit int) ([]model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error
}
