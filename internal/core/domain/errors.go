package domain

import (
	"errors"
	"sort"
	"strings"
)

// Error kinds. Every error returned by the core wraps exactly one of these, so
// the transport layer only needs errors.Is against the kind.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
)

// kindError is a message tied to one of the error kinds above.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NewError returns an error with msg as its text that matches kind under errors.Is.
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	ErrInvalidCredentials = NewError(ErrUnauthorized, "invalid credentials")
	ErrAccountSuspended   = NewError(ErrUnauthorized, "account suspended")
	ErrUserNotFound       = NewError(ErrNotFound, "user not found")
	ErrUserExists         = NewError(ErrConflict, "username or email already registered")
	ErrInterestNotFound   = NewError(ErrNotFound, "interest not found")

	ErrSelfConnection     = NewError(ErrConflict, "cannot connect to yourself")
	ErrDuplicateRequest   = NewError(ErrConflict, "connection request already exists")
	ErrConnectionNotFound = NewError(ErrNotFound, "connection request not found")

	ErrClubNotFound  = NewError(ErrNotFound, "club not found")
	ErrNotAMember    = NewError(ErrConflict, "not a member of this club")
	ErrClubInactive  = NewError(ErrConflict, "club is not active")
	ErrEventNotFound = NewError(ErrNotFound, "event not found")

	ErrProjectNotFound    = NewError(ErrNotFound, "project not found")
	ErrInvalidAmount      = NewError(ErrValidation, "amount must be greater than zero")
	ErrProjectNotActive   = NewError(ErrConflict, "project is not accepting contributions")
	ErrProjectNotEditable = NewError(ErrConflict, "project can only be edited while in draft")
	ErrInvalidTransition  = NewError(ErrConflict, "invalid status transition")

	ErrContributionInProgress = NewError(ErrConflict, "a contribution with this idempotency key is still in progress")
	ErrIdempotencyKeyReused   = NewError(ErrConflict, "idempotency key was already used for a different contribution")

	ErrPostNotFound    = NewError(ErrNotFound, "post not found")
	ErrCommentNotFound = NewError(ErrNotFound, "comment not found")

	ErrNotificationNotFound = NewError(ErrNotFound, "notification not found")

	ErrMentorNotFound        = NewError(ErrNotFound, "mentor profile not found")
	ErrMentorshipNotFound    = NewError(ErrNotFound, "mentorship request not found")
	ErrSelfMentorship        = NewError(ErrConflict, "cannot request mentorship from yourself")
	ErrDuplicateMentorship   = NewError(ErrConflict, "an open mentorship request already exists")
	ErrMentorshipNotAccepted = NewError(ErrConflict, "mentorship is not active")
	ErrSessionNotFound       = NewError(ErrNotFound, "session not found")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewFieldError is shorthand for a ValidationError on a single field.
func NewFieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
