// Package validate holds the scalar field validators shared by the service
// layer. Each function normalizes its input (trimming where appropriate) and
// returns a domain.ValidationError describing the first problem found. All
// checks run before any store write.
package validate

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkmarket/commission-market/internal/core/domain"
)

const (
	TitleMin   = 5
	TitleMax   = 128
	DetailsMin = 32
	DetailsMax = 1024
	CommentMin = 10
	CommentMax = 512

	// Commerce policy bounds for a commission price.
	PriceMin = 3
	PriceMax = 150

	RatingMin = 0
	RatingMax = 5
)

// ID checks that s is a well-formed object id and returns it trimmed.
func ID(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewValidationError(field, "must not be empty")
	}
	if _, err := primitive.ObjectIDFromHex(s); err != nil {
		return "", domain.NewValidationError(field, "must be a valid id")
	}
	return s, nil
}

// String checks that s is non-empty after trimming.
func String(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewValidationError(field, "must not be empty")
	}
	return s, nil
}

func boundedString(field, s string, min, max int) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < min || len(s) > max {
		return "", domain.NewValidationError(field, fmt.Sprintf("must be between %d and %d characters", min, max))
	}
	return s, nil
}

// Title checks a commission title.
func Title(s string) (string, error) {
	return boundedString("title", s, TitleMin, TitleMax)
}

// Details checks a commission description.
func Details(s string) (string, error) {
	return boundedString("details", s, DetailsMin, DetailsMax)
}

// Comment checks a review comment.
func Comment(s string) (string, error) {
	return boundedString("comment", s, CommentMin, CommentMax)
}

// Price checks a commission price against the commerce policy bounds.
func Price(p float64) (float64, error) {
	if p < PriceMin || p > PriceMax {
		return 0, domain.NewValidationError("price", fmt.Sprintf("must be between %d and %d", PriceMin, PriceMax))
	}
	return p, nil
}

// Rating checks a review rating.
func Rating(r float64) (float64, error) {
	if r < RatingMin || r > RatingMax {
		return 0, domain.NewValidationError("rating", fmt.Sprintf("must be between %d and %d", RatingMin, RatingMax))
	}
	return r, nil
}
