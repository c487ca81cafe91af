package handler

import (
	"errors"
	"testing"

	"github.com/tweesky/treedoc/internal/apierr"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload map[string]any
		wantMsg string
	}{
		{
			name:    "empty payload",
			payload: map[string]any{},
			wantMsg: MsgURLMissing,
		},
		{
			name:    "nil payload",
			payload: nil,
			wantMsg: MsgURLMissing,
		},
		{
			name:    "url missing while others present",
			payload: map[string]any{"title": "t", "image": "i"},
			wantMsg: MsgURLMissing,
		},
		{
			name:    "title missing",
			payload: map[string]any{"url": "u", "image": "i"},
			wantMsg: MsgTitleMissing,
		},
		{
			name:    "image missing",
			payload: map[string]any{"url": "u", "title": "t"},
			wantMsg: MsgImageMissing,
		},
		{
			name:    "null values count as present",
			payload: map[string]any{"url": nil, "title": nil, "image": nil},
		},
		{
			name:    "extra keys ignored",
			payload: map[string]any{"url": "u", "title": "t", "image": "i", "name": "Dragon tree"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateInput(tt.payload)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidateInput() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, apierr.ErrValidationFailed) {
				t.Fatalf("ValidateInput() error = %v, want validation failure", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("ValidateInput() message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}
