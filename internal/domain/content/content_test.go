package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/reachforge/reachforge/internal/domain"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"validation to review", StatusPendingValidation, StatusPendingReview, true},
		{"validation to rejected", StatusPendingValidation, StatusRejected, true},
		{"validation straight to approved", StatusPendingValidation, StatusApproved, false},
		{"review to approved", StatusPendingReview, StatusApproved, true},
		{"review to rejected", StatusPendingReview, StatusRejected, true},
		{"review to published", StatusPendingReview, StatusPublished, false},
		{"approved to published", StatusApproved, StatusPublished, true},
		{"approved to approved", StatusApproved, StatusApproved, false},
		{"published is terminal", StatusPublished, StatusApproved, false},
		{"published to published", StatusPublished, StatusPublished, false},
		{"rejected back to review", StatusRejected, StatusPendingReview, true},
		{"rejected to published", StatusRejected, StatusPublished, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidateCreateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid minimal",
			req:  CreateRequest{OriginalText: "X"},
		},
		{
			name:    "missing original_text",
			req:     CreateRequest{Topic: "go tips"},
			wantErr: true,
			errMsg:  "original_text is required",
		},
		{
			name:    "whitespace original_text",
			req:     CreateRequest{OriginalText: "   "},
			wantErr: true,
			errMsg:  "original_text is required",
		},
		{
			name: "confidence at lower bound",
			req:  CreateRequest{OriginalText: "x", AIConfidenceScore: 0},
		},
		{
			name: "confidence at upper bound",
			req:  CreateRequest{OriginalText: "x", AIConfidenceScore: 1},
		},
		{
			name:    "confidence below range",
			req:     CreateRequest{OriginalText: "x", AIConfidenceScore: -0.0001},
			wantErr: true,
			errMsg:  "ai_confidence_score",
		},
		{
			name:    "confidence above range",
			req:     CreateRequest{OriginalText: "x", AIConfidenceScore: 1.0001},
			wantErr: true,
			errMsg:  "ai_confidence_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateRequest(&tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected ErrValidation, got: %v", err)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error to contain %q, got: %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateUpdateRequestBadStatus(t *testing.T) {
	bad := Status("archived")
	err := ValidateUpdateRequest(&UpdateRequest{Status: &bad})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if !strings.Contains(err.Error(), "pending_validation") {
		t.Errorf("expected allowed values in message, got: %v", err)
	}

	good := StatusPendingReview
	if err := ValidateUpdateRequest(&UpdateRequest{Status: &good}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
