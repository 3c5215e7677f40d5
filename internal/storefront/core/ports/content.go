package ports

import (
	"context"

	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

// ContentService serves the public pages of the site.
type ContentService interface {
	Settings(ctx context.Context, token string) (*entity.Settings, error)
	Gallery(ctx context.Context, page int) (entity.Page[entity.GalleryImage], error)
	Partners(ctx context.Context) ([]entity.Partner, error)
	Partner(ctx context.Context, id int64) (*entity.Partner, error)
	Reviews(ctx context.Context) ([]entity.WorkshopReview, error)
	Videos(ctx context.Context) ([]entity.MediaLink, error)
	InstagramLives(ctx context.Context) ([]entity.MediaLink, error)
	// RequestConsultation returns the server message, which may be empty.
	RequestConsultation(ctx context.Context, token, message string) (string, error)
}

// Notifier delivers toasts to whoever is serving the current request.
type Notifier interface {
	Notify(ctx context.Context, toast entity.Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, toast entity.Toast)

func (f NotifierFunc) Notify(ctx context.Context, toast entity.Toast) { f(ctx, toast) }
