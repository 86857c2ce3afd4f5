package twin

import (
	"errors"
	"testing"
	"time"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("secret")

	token, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() = %d, want 42", userID)
	}
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("secret")

	foreign, err := NewTokens("another-secret").Issue(1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	past := NewTokens("secret")
	past.now = func() time.Time { return time.Now().Add(-2 * TokenTTL) }
	stale, err := past.Issue(1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "invalid-token-12345"},
		{"signed with another secret", foreign},
		{"expired", stale},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tokens.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
