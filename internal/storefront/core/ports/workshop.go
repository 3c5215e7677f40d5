package ports

import (
	"context"

	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

type WorkshopService interface {
	ListWorkshops(ctx context.Context, token string) (entity.WorkshopListing, error)
	GetWorkshop(ctx context.Context, token string, id int64) (*entity.WorkshopDetails, error)
	Subscribe(ctx context.Context, token string, req entity.SubscriptionRequest) (*entity.SubscriptionResult, error)
	Join(ctx context.Context, token string) (*entity.JoinInfo, error)
}
