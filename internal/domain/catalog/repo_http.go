package catalog

import (
	"context"
	"net/url"

	"github.com/frontdesk/frontdesk/internal/platform/upstream"
)

// RepoHTTP stores and fetches catalog entries through the upstream hospital
// API.
type RepoHTTP struct {
	client *upstream.Client
}

func NewRepoHTTP(client *upstream.Client) *RepoHTTP {
	return &RepoHTTP{client: client}
}

func (r *RepoHTTP) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := r.client.Get(ctx, "/api/medicines", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *RepoHTTP) ListByDisease(ctx context.Context, disease string) ([]Entry, error) {
	var entries []Entry
	q := url.Values{"disease": {disease}}
	if err := r.client.Get(ctx, "/api/medicines", q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *RepoHTTP) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	if err := r.client.Get(ctx, "/api/medicines/"+id, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateBatch persists the whole batch in one call. The upstream accepts an
// array on its batch-add endpoint; from this layer's perspective the call is
// atomic.
func (r *RepoHTTP) CreateBatch(ctx context.Context, entries []Entry) error {
	return r.client.Post(ctx, "/api/medicines/add", entries, nil)
}

func (r *RepoHTTP) Update(ctx context.Context, e Entry) error {
	return r.client.Put(ctx, "/api/medicines/"+e.ID, e, nil)
}

func (r *RepoHTTP) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/api/medicines/"+id)
}
