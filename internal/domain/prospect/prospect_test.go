package prospect

import (
	"errors"
	"strings"
	"testing"

	"github.com/reachforge/reachforge/internal/domain"
)

func validReq() CreateRequest {
	return CreateRequest{
		VentureID:   "v-1",
		LinkedInURL: "https://linkedin.com/in/jane",
		Name:        "Jane Doe",
	}
}

func TestCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr string
	}{
		{"valid", func(*CreateRequest) {}, ""},
		{"missing venture", func(r *CreateRequest) { r.VentureID = "" }, "venture_id is required"},
		{"missing name", func(r *CreateRequest) { r.Name = " " }, "name is required"},
		{"missing url", func(r *CreateRequest) { r.LinkedInURL = "" }, "linkedin_url is required"},
		{"non-linkedin url", func(r *CreateRequest) { r.LinkedInURL = "https://example.com/jane" }, "linkedin.com"},
		{"score above range", func(r *CreateRequest) { r.Scores.Reach = 1.5 }, "reach score"},
		{"score below range", func(r *CreateRequest) { r.Scores.GapFill = -0.01 }, "gap_fill score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validReq()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to contain %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestScoresBoundary(t *testing.T) {
	s := Scores{Criticality: 0, Relevance: 1, Reach: 0.5}
	if err := s.Validate(); err != nil {
		t.Fatalf("boundary values should be accepted: %v", err)
	}
}
