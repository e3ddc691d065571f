package appointment

import (
	"context"

	"github.com/frontdesk/frontdesk/internal/platform/upstream"
)

type RepoHTTP struct {
	client *upstream.Client
}

func NewRepoHTTP(client *upstream.Client) *RepoHTTP {
	return &RepoHTTP{client: client}
}

func (r *RepoHTTP) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := r.client.Get(ctx, "/api/appointments", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RepoHTTP) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := r.client.Get(ctx, "/api/appointments/"+id, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RepoHTTP) Create(ctx context.Context, rec Record) error {
	return r.client.Post(ctx, "/api/appointments/add", rec, nil)
}

func (r *RepoHTTP) Update(ctx context.Context, rec Record) error {
	return r.client.Put(ctx, "/api/appointments/"+rec.ID, rec, nil)
}

func (r *RepoHTTP) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/api/appointments/"+id)
}

func (r *RepoHTTP) Count(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := r.client.Get(ctx, "/api/appointments/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
