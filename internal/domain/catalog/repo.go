package catalog

import "context"

// Repository is the catalog as the upstream service holds it.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	ListByDisease(ctx context.Context, disease string) ([]Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	CreateBatch(ctx context.Context, entries []Entry) error
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
}
