package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxSlugAttempts bounds the numeric-suffix probe; past it a random suffix
// guarantees termination even when many posts share a title.
const maxSlugAttempts = 50

const slugMaxLen = 48

// slugFragment lowercases the title, collapses runs of non-alphanumerics to
// single hyphens, trims edge hyphens and truncates.
func slugFragment(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	s := strings.Trim(b.String(), "-")
	if len(s) > slugMaxLen {
		s = strings.Trim(s[:slugMaxLen], "-")
	}
	return s
}

// generateUniqueSlug derives a URL-safe slug from the title and probes the
// posts table until no collision remains, excluding the post being edited.
// Two concurrent creates with the same title can still race to the same
// candidate; the unique index on posts.slug rejects the loser.
func (s *PostService) generateUniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	base := slugFragment(title)
	if base == "" {
		base = fmt.Sprintf("post-%d", time.Now().UnixMilli())
	}

	attempt := base
	for i := 1; i <= maxSlugAttempts; i++ {
		exists, err := s.posts.SlugExists(ctx, attempt, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return attempt, nil
		}
		attempt = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8]), nil
}
