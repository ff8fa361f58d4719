package handlers

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Free-text fields are stored as plain text.
var textPolicy = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
