package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

// Ensure FakeBoutique implements the ports at compile time.
var (
	_ ports.CartService    = (*FakeBoutique)(nil)
	_ ports.OrderService   = (*FakeBoutique)(nil)
	_ ports.ProductService = (*FakeBoutique)(nil)
)

// FakeBoutique is an in-memory boutique intended for local development and
// tests only. Carts are keyed by token. Do NOT use in production.
type FakeBoutique struct {
	mu       sync.Mutex
	products []entity.Product
	carts    map[string][]entity.CartItem
	nextItem int64
	nextOrd  int64
	options  entity.PaymentOptions
	payURL   string
}

// NewFakeBoutique returns a boutique selling products with both payment
// methods enabled.
func NewFakeBoutique(products []entity.Product) *FakeBoutique {
	return &FakeBoutique{
		products: products,
		carts:    make(map[string][]entity.CartItem),
		options:  entity.PaymentOptions{OnlinePayment: true, BankTransfer: true},
		payURL:   "https://pay.example.test/invoice/",
	}
}

// DemoProducts is a small catalog for local runs.
func DemoProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Title: "دفتر اليوميات", Price: decimal.RequireFromString("45.00"), Category: "stationery"},
		{ID: 2, Title: "كوب السعادة", Price: decimal.RequireFromString("30.00"), Category: "gifts"},
		{ID: 3, Title: "بطاقات التأمل", Price: decimal.RequireFromString("60.00"), Category: "cards"},
	}
}

// SetPaymentOptions changes which payment methods the summary offers.
func (f *FakeBoutique) SetPaymentOptions(opts entity.PaymentOptions) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.options = opts
}

func (f *FakeBoutique) ListProducts(_ context.Context, _ string, page int) (entity.Page[entity.Product], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return entity.Paginate(f.products, page, entity.MinFullPage), nil
}

func (f *FakeBoutique) GetCart(_ context.Context, token string) (entity.CartReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := requireToken(token); err != nil {
		return entity.CartReply{}, err
	}
	return f.reply(token), nil
}

func (f *FakeBoutique) AddItem(_ context.Context, token string, productID int64, quantity int) (entity.CartReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := requireToken(token); err != nil {
		return entity.CartReply{}, err
	}

	product, ok := f.product(productID)
	if !ok {
		return entity.CartReply{}, &api.Error{Status: http.StatusNotFound, Key: "fail", Msg: "المنتج غير موجود"}
	}

	cart := f.carts[token]
	for i, it := range cart {
		if it.ProductID == productID {
			cart[i] = it.WithQuantity(it.Quantity + quantity)
			return f.reply(token), nil
		}
	}

	f.nextItem++
	item := entity.CartItem{
		ID:        f.nextItem,
		ProductID: product.ID,
		Price:     product.Price,
		Product:   entity.CartProduct{ID: product.ID, Title: product.Title, Price: product.Price, Image: product.Image},
	}
	f.carts[token] = append(cart, item.WithQuantity(quantity))
	return f.reply(token), nil
}

func (f *FakeBoutique) RemoveItem(_ context.Context, token string, itemID int64) (entity.CartReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := requireToken(token); err != nil {
		return entity.CartReply{}, err
	}

	cart := f.carts[token]
	for i, it := range cart {
		if it.ID == itemID {
			f.carts[token] = append(cart[:i:i], cart[i+1:]...)
			return f.reply(token), nil
		}
	}
	return entity.CartReply{}, &api.Error{Status: http.StatusNotFound, Key: "fail", Msg: "العنصر غير موجود في السلة"}
}

func (f *FakeBoutique) UpdateQuantity(_ context.Context, token string, itemID int64, quantity int) (entity.CartReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := requireToken(token); err != nil {
		return entity.CartReply{}, err
	}

	cart := f.carts[token]
	for i, it := range cart {
		if it.ID == itemID {
			cart[i] = it.WithQuantity(quantity)
			return f.reply(token), nil
		}
	}
	return entity.CartReply{}, &api.Error{Status: http.StatusNotFound, Key: "fail", Msg: "العنصر غير موجود في السلة"}
}

func (f *FakeBoutique) GetSummary(_ context.Context, token string) (*entity.OrderSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := requireToken(token); err != nil {
		return nil, err
	}

	cart := f.carts[token]
	if len(cart) == 0 {
		return nil, &api.Error{Status: http.StatusUnprocessableEntity, Key: "fail", Msg: "السلة فارغة"}
	}

	summary := &entity.OrderSummary{PaymentOptions: f.options}
	for _, it := range cart {
		summary.Products = append(summary.Products, entity.SummaryLine{
			ID:         it.ProductID,
			Title:      it.Product.Title,
			Quantity:   it.Quantity,
			Price:      it.Price,
			TotalPrice: it.LineTotal(),
		})
	}
	view := entity.NewCartView(cart)
	summary.Prices = entity.SummaryPrices{ProductsPrice: view.Total, Tax: decimal.Zero, TotalPrice: view.Total}
	if f.options.BankTransfer {
		summary.BankAccount = &entity.BankAccount{AccountName: "Workshop Demo", BankName: "Demo Bank", IBAN: "AE000000000000000000000"}
	}
	return summary, nil
}

func (f *FakeBoutique) CreateOrder(_ context.Context, token string, method entity.PaymentMethod) (*entity.OrderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if len(f.carts[token]) == 0 {
		return nil, &api.Error{Status: http.StatusUnprocessableEntity, Key: "fail", Msg: "السلة فارغة"}
	}
	if !f.options.Offers(method) {
		return nil, &api.Error{Status: http.StatusUnprocessableEntity, Key: "fail", Msg: "طريقة الدفع غير متاحة"}
	}

	delete(f.carts, token)
	f.nextOrd++
	if method == entity.PaymentCard {
		return &entity.OrderResult{OrderID: f.nextOrd, InvoiceURL: f.payURL + uuid.NewString()}, nil
	}
	return &entity.OrderResult{OrderID: f.nextOrd}, nil
}

func (f *FakeBoutique) product(id int64) (entity.Product, bool) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// reply must be called with f.mu held.
func (f *FakeBoutique) reply(token string) entity.CartReply {
	items := entity.CloneItems(f.carts[token])
	if items == nil {
		items = []entity.CartItem{}
	}
	return entity.CartReply{Items: items, HasItems: true}
}

func requireToken(token string) error {
	if token == "" {
		return fmt.Errorf("fake boutique: %w", &api.Error{Status: http.StatusUnauthorized, Key: "unauthenticated"})
	}
	return nil
}
