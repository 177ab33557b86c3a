package validator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	maxTextLength = 10000
	maxBrandCount = 10
)

var (
	ErrInvalidUUID       = fmt.Errorf("invalid UUID format")
	ErrInvalidPagination = fmt.Errorf("invalid pagination parameters")
	ErrMissingParam      = fmt.Errorf("missing required parameter")
	ErrTextTooLong       = fmt.Errorf("text exceeds maximum length")
	ErrTooManyBrands     = fmt.Errorf("too many brands")
)

func ValidateUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return parsed, nil
}

func RequireParam(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return nil
}

func ValidateAnalysisText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text", ErrMissingParam)
	}
	if len(text) > maxTextLength {
		return fmt.Errorf("%w: text cannot exceed %d characters", ErrTextTooLong, maxTextLength)
	}
	return nil
}

func ValidateBrandList(brands []string) error {
	if len(brands) > maxBrandCount {
		return fmt.Errorf("%w: at most %d brands per request", ErrTooManyBrands, maxBrandCount)
	}
	for _, brand := range brands {
		if strings.TrimSpace(brand) == "" {
			return fmt.Errorf("%w: brand name", ErrMissingParam)
		}
	}
	return nil
}

func ValidatePageParams(page, limit int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1", ErrInvalidPagination)
	}
	if limit < 1 || limit > 100 {
		return fmt.Errorf("%w: limit must be between 1 and 100", ErrInvalidPagination)
	}
	return nil
}

func SanitizeString(s string) string {
	return strings.TrimSpace(s)
}
