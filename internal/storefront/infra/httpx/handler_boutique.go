package httpx

import (
	"net/http"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.ListProducts(r.Context(), token(r), pageParam(r))
	if err != nil {
		h.handleError(w, r, err, i18n.ProductsLoadFailed, i18n.ProductsLoadError)
		return
	}
	respond(w, r, http.StatusOK, page)
}

// GetCart refreshes the visitor's cart from the API and returns it. A failed
// refresh still returns the last known cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.cartFor(r)
	c.FetchCart(r.Context())
	respond(w, r, http.StatusOK, c.Snapshot())
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.CartAddFailed, i18n.CartAddError)
		return
	}

	c := h.cartFor(r)
	if err := c.AddToCart(r.Context(), entity.Product{ID: req.ProductID}); err != nil {
		h.handleError(w, r, err, i18n.CartAddFailed, i18n.CartAddError)
		return
	}
	respond(w, r, http.StatusOK, c.Snapshot())
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.handleError(w, r, err, i18n.CartUpdateFailed, i18n.CartUpdateError)
		return
	}
	var req UpdateQuantityRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.CartUpdateFailed, i18n.CartUpdateError)
		return
	}

	c := h.cartFor(r)
	if err := c.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		h.handleError(w, r, err, i18n.CartUpdateFailed, i18n.CartUpdateError)
		return
	}
	respond(w, r, http.StatusOK, c.Snapshot())
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.handleError(w, r, err, i18n.CartRemoveFailed, i18n.CartRemoveError)
		return
	}

	c := h.cartFor(r)
	if err := c.RemoveFromCart(r.Context(), id); err != nil {
		h.handleError(w, r, err, i18n.CartRemoveFailed, i18n.CartRemoveError)
		return
	}
	respond(w, r, http.StatusOK, c.Snapshot())
}

func (h *Handler) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	view, err := h.checkoutFor(r).FetchOrderSummary(r.Context())
	if err != nil {
		h.handleError(w, r, err, i18n.SummaryLoadFailed, i18n.SummaryLoadError)
		return
	}
	respond(w, r, http.StatusOK, view)
}

func (h *Handler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, r, err, i18n.PaymentMethodInvalid, i18n.GenericError)
		return
	}

	view, err := h.checkoutFor(r).SelectPaymentMethod(r.Context(), req.PaymentMethod)
	if err != nil {
		h.handleError(w, r, err, i18n.PaymentMethodInvalid, i18n.GenericError)
		return
	}
	respond(w, r, http.StatusOK, view)
}

func (h *Handler) CheckoutBack(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, h.checkoutFor(r).Back())
}

// SubmitOrder places the order. For online payments the response carries
// redirect_url and the UI continues on the payment page.
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	out, err := h.checkoutFor(r).Submit(r.Context())
	if err != nil {
		h.handleError(w, r, err, i18n.OrderCreateFailed, i18n.OrderCreateError)
		return
	}
	respond(w, r, http.StatusCreated, out)
}
