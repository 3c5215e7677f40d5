package entity

import "github.com/shopspring/decimal"

// Product is a boutique catalog entry.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// CartProduct is the product subset the API denormalizes onto a line.
type CartProduct struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// CartItem is one cart line. ItemTotal is owned by the server; locally it
// is only ever recomputed as Price * Quantity.
type CartItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	ItemTotal decimal.Decimal `json:"item_total"`
	Product   CartProduct     `json:"product"`
}

// WithQuantity returns a copy of the line with qty and a recomputed total.
func (i CartItem) WithQuantity(qty int) CartItem {
	i.Quantity = qty
	i.ItemTotal = i.Price.Mul(decimal.NewFromInt(int64(qty)))
	return i
}

// LineTotal is ItemTotal, or Price * Quantity when the server sent none.
func (i CartItem) LineTotal() decimal.Decimal {
	if !i.ItemTotal.IsZero() {
		return i.ItemTotal
	}
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartReply is a cart mutation response. HasItems is false when the API
// confirmed the mutation without returning the resulting list.
type CartReply struct {
	Items    []CartItem
	HasItems bool
}

// CartView is the cart as shown to the visitor.
type CartView struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// NewCartView computes the totals for items.
func NewCartView(items []CartItem) CartView {
	view := CartView{Items: items, Total: decimal.Zero}
	if view.Items == nil {
		view.Items = []CartItem{}
	}
	for _, it := range items {
		view.Total = view.Total.Add(it.LineTotal())
		view.Count += it.Quantity
	}
	return view
}

// CloneItems copies items so later writes to either slice stay independent.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
