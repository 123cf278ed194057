package handler

import (
	"errors"
	"testing"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

func TestValidator_UsesWireNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Username: "bob", Email: "bob@example.com", Password: "longenough", UserType: "pirate"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	if msg := ve.Fields["user_type"]; msg != "user_type must be one of: student alumni faculty recruiter" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestValidator_QueryTags(t *testing.T) {
	err := NewValidator().Validate(&PageQuery{Limit: 101, Offset: -1})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if ve.Fields["limit"] != "limit must be at most 100" || ve.Fields["offset"] != "offset must be at least 0" {
		t.Fatalf("unexpected fields: %v", ve.Fields)
	}
}

func TestValidator_Valid(t *testing.T) {
	if err := NewValidator().Validate(&loginRequest{Username: "bob", Password: "x"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
