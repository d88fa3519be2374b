package infra

import (
	"context"
	"errors"
	"testing"
)

func TestFirebaseToken_Tenant(t *testing.T) {
	tests := []struct {
		name  string
		token *FirebaseToken
		want  string
	}{
		{"nil token", nil, ""},
		{"no claims", &FirebaseToken{UID: "u1"}, ""},
		{"string claim", &FirebaseToken{Claims: map[string]interface{}{"tenant": "city"}}, "city"},
		{"non-string claim", &FirebaseToken{Claims: map[string]interface{}{"tenant": 42}}, ""},
	}
	for _, tt := range tests {
		if got := tt.token.Tenant(); got != tt.want {
			t.Errorf("%s: Tenant() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNewFirebaseVerifier_RequiresProject(t *testing.T) {
	if _, err := NewFirebaseVerifier(context.Background(), "", ""); !errors.Is(err, ErrNoProjectID) {
		t.Fatalf("expected ErrNoProjectID, got %v", err)
	}
}
