package service

import (
	"strings"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/pkg/sanitize"
)

// NormalizeTagNames validates and cleans a free-form tag list. A nil input is
// an empty set; []string and []any of strings are accepted (non-string
// elements are skipped); anything else is a format error. Each candidate is
// HTML-stripped and whitespace-collapsed before the length checks, which
// fail fast. Deduplication is case-insensitive and keeps first-seen casing.
func NormalizeTagNames(input interface{}) ([]string, error) {
	if input == nil {
		return []string{}, nil
	}

	var candidates []string
	switch v := input.(type) {
	case []string:
		candidates = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				candidates = append(candidates, s)
			}
		}
	default:
		return nil, errInvalidTagFormat
	}

	cleaned := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, raw := range candidates {
		name := sanitize.PlainText(raw)
		if name == "" {
			continue
		}
		if len([]rune(name)) < model.TagNameMinLength {
			return nil, errTagTooShort
		}
		if len([]rune(name)) > model.TagNameMaxLength {
			return nil, errTagTooLong
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, name)
	}

	if len(cleaned) > model.MaxTagsPerPost {
		return nil, errTooManyTags
	}
	return cleaned, nil
}
