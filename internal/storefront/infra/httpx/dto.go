package httpx

import "github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"

// Response carries the language the messages were written in and its text
// direction, so the UI can lay the page out right-to-left for Arabic.
type Response struct {
	Data   any            `json:"data"`
	Toasts []entity.Toast `json:"toasts"`
	Lang   string         `json:"lang"`
	Dir    string         `json:"dir"`
}

type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message,omitempty"`
	Toasts  []entity.Toast `json:"toasts"`
	Lang    string         `json:"lang"`
	Dir     string         `json:"dir"`
}

type LoginRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,numeric"`
	CountryID   int64  `json:"country_id" validate:"required,gt=0"`
	CountryCode string `json:"country_code" validate:"required,numeric"`
}

type RegisterRequest struct {
	FullName    string `json:"full_name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,numeric"`
	CountryID   int64  `json:"country_id" validate:"required,gt=0"`
	CountryCode string `json:"country_code" validate:"required,numeric"`
}

type AuthResponse struct {
	LoggedIn bool `json:"logged_in"`
}

type AddToCartRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// UpdateQuantityRequest accepts any quantity; values below 1 are ignored.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type PaymentMethodRequest struct {
	PaymentMethod entity.PaymentMethod `json:"payment_method" validate:"required,oneof=card bank"`
}

type SubscribeRequest struct {
	PackageID      int64                   `json:"package_id" validate:"required,gt=0"`
	Type           entity.SubscriptionType `json:"subscription_type" validate:"required,oneof=self gift"`
	CountryID      int64                   `json:"country_id" validate:"required,gt=0"`
	CountryCode    string                  `json:"country_code" validate:"omitempty,numeric"`
	FullName       string                  `json:"full_name" validate:"required_if=Type self"`
	Email          string                  `json:"email" validate:"required_if=Type self,omitempty,email"`
	Phone          string                  `json:"phone" validate:"required_if=Type self,omitempty,numeric"`
	RecipientName  string                  `json:"recipient_name" validate:"required_if=Type gift"`
	RecipientPhone string                  `json:"recipient_phone" validate:"required_if=Type gift,omitempty,numeric"`
	Message        string                  `json:"message" validate:"max=500"`
}

type ReviewRequest struct {
	SubscriptionID int64  `json:"subscription_id" validate:"required,gt=0"`
	WorkshopID     int64  `json:"workshop_id" validate:"required,gt=0"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Comment        string `json:"comment" validate:"max=2000"`
}

type ConsultationRequest struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
