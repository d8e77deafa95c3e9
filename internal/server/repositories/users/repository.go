// Package users is the credential store: a durable mapping from username to
// identity record. Every backend enforces username uniqueness at write time
// and reports a violation as common.ErrAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	// Create stores a new record, assigning its ID and CreatedAt.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrNotFound when no record matches.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
