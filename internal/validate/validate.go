package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"bludify/internal/domain"
)

const (
	MaxQueryRunes = 100
	MaxPrice      = domain.Rupees(10000000)
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reCategory = regexp.MustCompile(`^[A-Za-z]{1,20}$`)
	reRef      = regexp.MustCompile(`^BLD-[0-9]{4}-[A-Z0-9]{2}$`)
	reCode     = regexp.MustCompile(`^[a-z0-9]{6,32}$`)
	reTier     = regexp.MustCompile(`^[a-z]{1,20}$`)
)

// Q validates a search query: trims, rejects control characters and markup
// brackets, and caps the length. Empty is valid and means "no filter".
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxQueryRunes || !utf8.ValidString(s) {
		return "", false
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == '<' || r == '>' {
			return "", false
		}
	}
	return s, true
}

// Category validates the shape of a category label. Empty means "All".
// Whether the label names a real category is the catalog's concern.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.AllCategories, true
	}
	return s, reCategory.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Title validates a listing title: 2-60 printable characters.
func Title(s string) (string, bool) {
	return text(s, 2, 60)
}

// Specs validates a short free-text spec line; it may be empty.
func Specs(s string) (string, bool) {
	return text(s, 0, 80)
}

func text(s string, min, max int) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < min || n > max || !utf8.ValidString(s) {
		return "", false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) || r == '<' || r == '>' {
			return "", false
		}
	}
	return s, true
}

// Condition validates the closed condition set.
func Condition(s string) (domain.Condition, bool) {
	c := domain.Condition(strings.TrimSpace(s))
	return c, c.Valid()
}

// ListingCategory accepts only real categories; "All" is not a place to list.
func ListingCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range domain.Categories[1:] {
		if s == c {
			return s, true
		}
	}
	return "", false
}

// Price parses a whole-rupee amount, allowing Indian or western separators.
func Price(s string) (domain.Rupees, bool) {
	s = strings.NewReplacer(",", "", "₹", "", " ", "").Replace(strings.TrimSpace(s))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 || domain.Rupees(n) > MaxPrice {
		return 0, false
	}
	return domain.Rupees(n), true
}

func Tier(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reTier.MatchString(s)
}

// Ref validates a listing reference like BLD-1234-AB.
func Ref(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reRef.MatchString(s)
}

// Code validates the shape of a claim code.
func Code(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reCode.MatchString(s)
}
