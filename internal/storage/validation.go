// Package storage provides the persistence layer for the expense ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrInvalidTag  = errors.New("invalid checkpoint tag: cannot contain path separators")
)

// validateContext ensures the context is not nil and not done.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTag rejects checkpoint tags that could escape the checkpoints directory.
func validateTag(tag string) error {
	if err := validateString(tag, "tag"); err != nil {
		return err
	}
	if strings.ContainsAny(tag, `/\`) || strings.Contains(tag, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	return nil
}
