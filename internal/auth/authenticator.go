package auth

import (
	"context"

	"github.com/mmynk/idine/internal/models"
)

// Authenticator verifies diner credentials.
type Authenticator interface {
	// Register creates an account and returns it.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching the credentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks a credential before it is stored.
	ValidateCredential(credential string) error
}
