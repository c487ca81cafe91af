package handler

import "github.com/tweesky/treedoc/internal/apierr"

// Messages returned when a create payload lacks a required key.
const (
	MsgURLMissing   = "URL is missing"
	MsgTitleMissing = "Title is missing"
	MsgImageMissing = "Image is missing"
)

// requiredInputKeys is checked in order; the first absent key decides the error.
var requiredInputKeys = []struct {
	key string
	msg string
}{
	{"url", MsgURLMissing},
	{"title", MsgTitleMissing},
	{"image", MsgImageMissing},
}

// ValidateInput checks that payload carries the url, title and image keys.
// Only presence is checked; a key mapped to null still counts as present.
func ValidateInput(payload map[string]any) error {
	for _, req := range requiredInputKeys {
		if _, ok := payload[req.key]; !ok {
			return apierr.ValidationFailed(req.msg)
		}
	}
	return nil
}
