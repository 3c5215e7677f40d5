package httpx

import (
	"net/http"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

// workshopPageSize is how many workshop cards a listing page shows.
const workshopPageSize = 9

func (h *Handler) ListWorkshops(w http.ResponseWriter, r *http.Request) {
	listing, err := h.workshops.ListWorkshops(r.Context(), token(r))
	if err != nil {
		h.handleError(w, r, err, i18n.WorkshopsLoadFailed, i18n.WorkshopsLoadError)
		return
	}
	respond(w, r, http.StatusOK, entity.Paginate(listing.All(), pageParam(r), workshopPageSize))
}

func (h *Handler) GetWorkshop(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.handleError(w, r, err, i18n.WorkshopDetailsLoadFailed, i18n.WorkshopDetailsLoadError)
		return
	}
	details, err := h.workshops.GetWorkshop(r.Context(), token(r), id)
	if err != nil {
		h.handleError(w, r, err, i18n.WorkshopDetailsLoadFailed, i18n.WorkshopDetailsLoadError)
		return
	}
	respond(w, r, http.StatusOK, details)
}

// Subscribe does not require a login; the token is forwarded when present.
// The package must be one of the workshop's.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	workshopID, err := idParam(r, "id")
	if err != nil {
		h.handleError(w, r, err, i18n.SubscriptionFailed, i18n.SubscriptionError)
		return
	}
	var req SubscribeRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.SubscriptionFailed, i18n.SubscriptionError)
		return
	}

	details, err := h.workshops.GetWorkshop(r.Context(), token(r), workshopID)
	if err != nil {
		h.handleError(w, r, err, i18n.SubscriptionFailed, i18n.SubscriptionError)
		return
	}
	if !offersPackage(details, req.PackageID) {
		h.handleError(w, r, &ValidationError{
			Field:   "package_id",
			Message: i18n.Tc(r.Context(), i18n.FieldInvalid, "package_id"),
		}, i18n.SubscriptionFailed, i18n.SubscriptionError)
		return
	}

	field, phone := "phone", req.Phone
	if req.Type == entity.SubscriptionGift {
		field, phone = "recipient_phone", req.RecipientPhone
	}
	if err := checkPhone(r.Context(), field, phone, req.CountryCode); err != nil {
		h.handleError(w, r, err, i18n.SubscriptionFailed, i18n.SubscriptionError)
		return
	}

	res, err := h.workshops.Subscribe(r.Context(), token(r), entity.SubscriptionRequest{
		PackageID:      req.PackageID,
		Type:           req.Type,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		CountryID:      req.CountryID,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Message:        req.Message,
	})
	if err != nil {
		h.handleError(w, r, err, i18n.SubscriptionFailed, i18n.SubscriptionError)
		return
	}
	respond(w, r, http.StatusCreated, res)
}

func (h *Handler) JoinWorkshop(w http.ResponseWriter, r *http.Request) {
	tok := token(r)
	if tok == "" {
		h.handleError(w, r, api.ErrNotAuthenticated, i18n.WorkshopJoinError, i18n.WorkshopJoinError)
		return
	}
	info, err := h.workshops.Join(r.Context(), tok)
	if err != nil {
		h.handleError(w, r, err, i18n.WorkshopJoinError, i18n.WorkshopJoinError)
		return
	}
	respond(w, r, http.StatusOK, info)
}

func offersPackage(details *entity.WorkshopDetails, packageID int64) bool {
	if details == nil {
		return false
	}
	for _, p := range details.Packages {
		if p.ID == packageID {
			return true
		}
	}
	return false
}
