package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tweesky/treedoc/internal/apierr"
)

func TestValidateAPIToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		header    *string
		wantToken string
		wantMsg   string
	}{
		{name: "missing header", header: nil, wantMsg: MsgMissingToken},
		{name: "empty header", header: ptr(""), wantMsg: MsgInvalidToken},
		{name: "basic scheme", header: ptr("Basic dXNlcjpwYXNz"), wantMsg: MsgInvalidToken},
		{name: "lowercase bearer", header: ptr("bearer abc"), wantMsg: MsgInvalidToken},
		{name: "bearer without space", header: ptr("Bearerabc"), wantMsg: MsgInvalidToken},
		{name: "valid", header: ptr("Bearer abc123"), wantToken: "abc123"},
		{name: "valid empty token", header: ptr("Bearer "), wantToken: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/trees", nil)
			if tt.header != nil {
				req.Header[AuthorizationHeader] = []string{*tt.header}
			}

			token, err := ValidateAPIToken(req)

			if tt.wantMsg != "" {
				if !errors.Is(err, apierr.ErrInvalidToken) {
					t.Fatalf("expected invalid token error, got %v", err)
				}
				if err.Error() != tt.wantMsg {
					t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestTokenContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if IsAuthenticated(ctx) {
		t.Error("empty context should not be authenticated")
	}

	ctx = ContextWithToken(ctx, "abc")
	token, ok := TokenFromContext(ctx)
	if !ok || token != "abc" {
		t.Errorf("TokenFromContext = %q, %v", token, ok)
	}
	if !IsAuthenticated(ctx) {
		t.Error("expected authenticated context")
	}
}

func ptr(s string) *string {
	return &s
}
