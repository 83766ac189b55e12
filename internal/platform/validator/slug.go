package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Slug validation errors
var (
	ErrInvalidSlugFormat = errors.New("slug must contain only lowercase letters, numbers, and hyphens")
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrSlugTooLong       = errors.New("slug is too long")
)

var (
	slugValidationRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugReplaceRegex    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugCollapseRegex   = regexp.MustCompile(`-+`)
)

// ValidateSlugFormat checks if a slug has valid format
func ValidateSlugFormat(slug string, maxLength int) error {
	if slug == "" {
		return ErrSlugEmpty
	}

	if len(slug) > maxLength {
		return ErrSlugTooLong
	}

	if !slugValidationRegex.MatchString(slug) {
		return ErrInvalidSlugFormat
	}

	return nil
}

// GenerateSlug creates a URL-friendly slug from a text string
func GenerateSlug(text string, maxLength int) string {
	slug := strings.ToLower(text)
	slug = slugReplaceRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = slugCollapseRegex.ReplaceAllString(slug, "-")

	if len(slug) > maxLength {
		slug = slug[:maxLength]
		// Truncation must not leave a trailing hyphen
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}

// MakeSlugUnique appends a numeric suffix to make a slug unique.
// Truncation is the caller's concern.
func MakeSlugUnique(baseSlug string, suffix int) string {
	if suffix <= 0 {
		return baseSlug
	}

	return fmt.Sprintf("%s-%d", baseSlug, suffix)
}

// MakeSlugUniqueWithMaxLength appends a suffix and keeps the result within maxLength
func MakeSlugUniqueWithMaxLength(baseSlug string, suffix int, maxLength int) string {
	if suffix <= 0 {
		if len(baseSlug) > maxLength {
			return baseSlug[:maxLength]
		}
		return baseSlug
	}

	suffixStr := "-" + strconv.Itoa(suffix)

	if len(baseSlug)+len(suffixStr) > maxLength {
		maxBaseLength := maxLength - len(suffixStr)
		if maxBaseLength > 0 {
			baseSlug = baseSlug[:maxBaseLength]
			baseSlug = strings.TrimRight(baseSlug, "-")
		}
	}

	return baseSlug + suffixStr
}
