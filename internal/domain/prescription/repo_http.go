package prescription

import (
	"context"

	"github.com/frontdesk/frontdesk/internal/domain/patient"
	"github.com/frontdesk/frontdesk/internal/platform/upstream"
)

// HTTPTestSource reads the seed catalog of investigations from the upstream
// API. The upstream returns bare names; the required flag is session state.
type HTTPTestSource struct {
	client *upstream.Client
}

func NewHTTPTestSource(client *upstream.Client) *HTTPTestSource {
	return &HTTPTestSource{client: client}
}

func (r *HTTPTestSource) ListTests(ctx context.Context) ([]patient.TestEntry, error) {
	var raw []struct {
		Name     string `json:"name"`
		TestName string `json:"testName"`
	}
	if err := r.client.Get(ctx, "/api/tests", nil, &raw); err != nil {
		return nil, err
	}
	tests := make([]patient.TestEntry, 0, len(raw))
	for _, t := range raw {
		name := t.Name
		if name == "" {
			name = t.TestName
		}
		if name == "" {
			continue
		}
		tests = append(tests, patient.TestEntry{TestName: name})
	}
	return tests, nil
}
