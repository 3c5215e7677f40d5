package entity

import "github.com/shopspring/decimal"

// PaymentMethod is the method picked in the checkout UI.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentBank PaymentMethod = "bank"
)

// PaymentType returns the value the API expects for payment_type.
func (m PaymentMethod) PaymentType() string {
	if m == PaymentCard {
		return "online"
	}
	return "bank_transfer"
}

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentBank
}

type PaymentOptions struct {
	OnlinePayment bool `json:"online_payment"`
	BankTransfer  bool `json:"bank_transfer"`
}

// Offers reports whether m is available.
func (o PaymentOptions) Offers(m PaymentMethod) bool {
	switch m {
	case PaymentCard:
		return o.OnlinePayment
	case PaymentBank:
		return o.BankTransfer
	}
	return false
}

// DefaultMethod is card when online payment is offered, otherwise bank when
// bank transfer is, otherwise "".
func (o PaymentOptions) DefaultMethod() PaymentMethod {
	switch {
	case o.OnlinePayment:
		return PaymentCard
	case o.BankTransfer:
		return PaymentBank
	}
	return ""
}

type BankAccount struct {
	AccountName   string `json:"account_name"`
	BankName      string `json:"bank_name"`
	IBAN          string `json:"IBAN_number"`
	AccountNumber string `json:"account_number"`
	Swift         string `json:"swift"`
}

type SummaryLine struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type SummaryPrices struct {
	ProductsPrice decimal.Decimal `json:"products_price"`
	Tax           decimal.Decimal `json:"tax"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// OrderSummary is computed by the server for the current checkout only.
type OrderSummary struct {
	Products       []SummaryLine  `json:"products"`
	Prices         SummaryPrices  `json:"prices"`
	PaymentOptions PaymentOptions `json:"payment_options"`
	BankAccount    *BankAccount   `json:"bank_account,omitempty"`
}

// OrderResult is the data of a successful order creation.
type OrderResult struct {
	OrderID    int64  `json:"order_id,omitempty"`
	InvoiceURL string `json:"invoice_url,omitempty"`
	Message    string `json:"message,omitempty"`
	// ServerMsg is the envelope msg, kept for the fallback toast.
	ServerMsg string `json:"-"`
}
