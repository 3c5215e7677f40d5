package ports

import (
	"context"

	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

type AuthService interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error)
	Register(ctx context.Context, reg entity.Registration) (*entity.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Countries(ctx context.Context) ([]entity.Country, error)
}

// ProfileService is the logged-in visitor's account area.
type ProfileService interface {
	GetProfile(ctx context.Context, token string) (*entity.Profile, error)
	SuggestWorkshops(ctx context.Context, token string) ([]entity.Workshop, error)
	// SubmitReview returns the server message, which may be empty.
	SubmitReview(ctx context.Context, token string, review entity.Review) (string, error)
	// Download streams a certificate or invoice. ref is the workshop id for
	// certificates and the subscription id for invoices.
	Download(ctx context.Context, token string, kind entity.DocumentKind, ref int64) (*entity.Document, error)
}
