package service

import (
	"fmt"
	"strings"

	"github.com/avasilyev/football-stats-service/internal/repository"
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

// validateName trims and length-checks a person or entity name field.
// Returns the normalized value and appends to ferrs on failure.
func validateName(field, value string, maxLen int, ferrs *[]FieldError) string {
	v := strings.TrimSpace(value)
	if v == "" {
		*ferrs = append(*ferrs, FieldError{Field: field, Message: "must not be empty"})
		return v
	}
	if ln := len([]rune(v)); ln > maxLen {
		*ferrs = append(*ferrs, FieldError{Field: field, Message: fmt.Sprintf("length must be <= %d", maxLen)})
	}
	return v
}

func validMinute(m int) bool { return m >= 0 && m <= 120 }
