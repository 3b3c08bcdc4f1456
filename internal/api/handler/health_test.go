package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestReadiness(t *testing.T) {
	cases := []struct {
		name   string
		checks map[string]DependencyCheck
		code   int
		status string
	}{
		{
			name: "all up",
			checks: map[string]DependencyCheck{
				"mongodb": func(context.Context) error { return nil },
				"redis":   func(context.Context) error { return nil },
			},
			code:   http.StatusOK,
			status: "ok",
		},
		{
			name: "redis down",
			checks: map[string]DependencyCheck{
				"mongodb": func(context.Context) error { return nil },
				"redis":   func(context.Context) error { return errors.New("connection refused") },
			},
			code:   http.StatusServiceUnavailable,
			status: "degraded",
		},
	}

	for _, tc := range cases {
		c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
		if err := NewHealthDependenciesHandler(tc.checks).Readiness(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != tc.code {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.code, rec.Code)
		}
		var resp readinessResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Status != tc.status {
			t.Errorf("%s: expected status %q, got %q", tc.name, tc.status, resp.Status)
		}
		if len(resp.Dependencies) != len(tc.checks) {
			t.Errorf("%s: expected %d dependencies, got %d", tc.name, len(tc.checks), len(resp.Dependencies))
		}
	}
}
