package repositories

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by every repository when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store bundles the repositories that share one backing database.
type Store interface {
	Users() UserRepository
	Events() EventRepository

	// WithinTransaction runs fn as one atomic unit. fn must use the ctx and tx it is given;
	// if fn returns an error nothing it wrote is kept.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error

	Ping(ctx context.Context) error
}
