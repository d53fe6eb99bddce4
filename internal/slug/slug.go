// Package slug derives URL-safe basket identifiers from display names and
// resolves their uniqueness within one owner's baskets.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/healthri/basket-api/internal/domain"
)

var (
	// Matches any run of characters outside the slug alphabet.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches runs of hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Normalize converts arbitrary text into a slug using only [a-z0-9-].
// "My Basket" -> "my-basket". "Crème Brûlée!!" -> "creme-brulee".
// Whitespace and punctuation runs collapse into single hyphens; leading and
// trailing hyphens are trimmed. The result may be empty (e.g. for "!!!");
// callers must treat an empty slug as a validation failure, never persist it.
func Normalize(s string) string {
	// Decompose accented characters so their base letters survive the
	// ASCII filter below.
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidateCustom checks a caller-supplied slug. Unlike name-derived slugs,
// custom slugs are never silently corrected: if normalizing the candidate
// would change it, the input is rejected with domain.ErrValidation.
func ValidateCustom(candidate string) error {
	if Normalize(candidate) != candidate {
		return fmt.Errorf("%w: slug %q is not valid: must use only lowercase letters, numbers, and hyphens", domain.ErrValidation, candidate)
	}
	return nil
}

// LookupFunc reports the basket currently holding a slug for the given
// owner, or domain.ErrNotFound when the slug is free. repo.BasketRepo's
// GetBySlug satisfies this shape.
type LookupFunc func(ctx context.Context, ownerID uuid.UUID, slug string) (domain.Basket, error)

// EnsureUnique resolves candidate into a slug not used by any of the
// owner's other baskets, appending -1, -2, ... until a free one is found.
//
// selfID short-circuits the rename case: when the basket holding the
// candidate is the basket being renamed, the candidate is treated as
// available and returned unchanged. Without this the loop would mint an
// ever-growing suffix chain every time a basket is renamed to its own name.
// Pass uuid.Nil for create, where no self exists yet.
func EnsureUnique(ctx context.Context, ownerID uuid.UUID, candidate string, selfID uuid.UUID, lookup LookupFunc) (string, error) {
	slug := candidate
	for counter := 1; ; counter++ {
		existing, err := lookup(ctx, ownerID, slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return slug, nil
			}
			return "", fmt.Errorf("slug.EnsureUnique: %w", err)
		}
		if selfID != uuid.Nil && existing.ID == selfID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", candidate, counter)
	}
}
