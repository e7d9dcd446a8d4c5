package service

import (
	"fmt"
	"strings"
)

const (
	maxDocIDLength = 255
	maxTextLength  = 1 << 20
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// ValidateIngestRequest checks the request against the ingestion contract.
// Empty text is allowed (it indexes nothing); an explicitly provided ID must
// be non-blank and bounded in length.
func ValidateIngestRequest(req *IngestRequest) error {
	errs := make(map[string]string)

	if req.ID != "" && strings.TrimSpace(req.ID) == "" {
		errs["id"] = "id must not be blank"
	}
	if len(req.ID) > maxDocIDLength {
		errs["id"] = fmt.Sprintf("id must be at most %d characters", maxDocIDLength)
	}
	if len(req.Text) > maxTextLength {
		errs["text"] = fmt.Sprintf("text must be at most %d bytes", maxTextLength)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
