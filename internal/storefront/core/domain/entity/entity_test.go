package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartItem_WithQuantity(t *testing.T) {
	item := CartItem{ID: 1, Price: decimal.NewFromInt(100), Quantity: 2, ItemTotal: decimal.NewFromInt(200)}

	updated := item.WithQuantity(3)

	if !updated.ItemTotal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected item_total 300, got %s", updated.ItemTotal)
	}
	if item.Quantity != 2 || !item.ItemTotal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("original line must not change")
	}
}

func TestNewCartView_Totals(t *testing.T) {
	items := []CartItem{
		{ID: 1, Price: decimal.RequireFromString("12.50"), Quantity: 2, ItemTotal: decimal.RequireFromString("25.00")},
		// no item_total from the server: falls back to price * quantity
		{ID: 2, Price: decimal.NewFromInt(10), Quantity: 3},
	}

	view := NewCartView(items)

	if !view.Total.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("expected total 55, got %s", view.Total)
	}
	if view.Count != 5 {
		t.Fatalf("expected count 5, got %d", view.Count)
	}
	if empty := NewCartView(nil); empty.Items == nil || empty.Count != 0 {
		t.Fatalf("expected a non-nil empty list")
	}
}

func TestCartItem_DecodesNumbersAndStrings(t *testing.T) {
	raw := `{"id":7,"product_id":3,"quantity":2,"price":"19.99","item_total":39.98,"product":{"id":3,"title":"Mug","price":19.99,"image":"m.png"}}`
	var item CartItem
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !item.Price.Equal(decimal.RequireFromString("19.99")) || !item.ItemTotal.Equal(decimal.RequireFromString("39.98")) {
		t.Fatalf("unexpected money values %s / %s", item.Price, item.ItemTotal)
	}
	if item.Product.Title != "Mug" {
		t.Fatalf("expected nested product")
	}
}

func TestPaymentOptions(t *testing.T) {
	cases := []struct {
		opts PaymentOptions
		want PaymentMethod
	}{
		{PaymentOptions{OnlinePayment: true, BankTransfer: true}, PaymentCard},
		{PaymentOptions{OnlinePayment: true}, PaymentCard},
		{PaymentOptions{BankTransfer: true}, PaymentBank},
		{PaymentOptions{}, ""},
	}
	for _, tc := range cases {
		if got := tc.opts.DefaultMethod(); got != tc.want {
			t.Errorf("DefaultMethod(%+v) = %q, want %q", tc.opts, got, tc.want)
		}
	}

	if PaymentCard.PaymentType() != "online" || PaymentBank.PaymentType() != "bank_transfer" {
		t.Fatalf("unexpected payment_type mapping")
	}
	if (PaymentOptions{BankTransfer: true}).Offers(PaymentCard) {
		t.Fatalf("card must not be offered")
	}
}

func TestFeatures_Unmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"array", `{"features":["a","b"]}`, []string{"a", "b"}},
		{"html list", `{"features":"<ul><li> one </li><li>two</li></ul>"}`, []string{"one", "two"}},
		{"plain string", `{"features":"just text"}`, []string{"just text"}},
		{"null", `{"features":null}`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p Package
			if err := json.Unmarshal([]byte(tc.raw), &p); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(p.Features) != len(tc.want) {
				t.Fatalf("got %v, want %v", p.Features, tc.want)
			}
			for i := range tc.want {
				if p.Features[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", p.Features, tc.want)
				}
			}
		})
	}

	if got := (Features{"1", "2", "3", "4"}).Top(3); len(got) != 3 {
		t.Fatalf("expected 3 features, got %d", len(got))
	}
}

func TestFlexibleID(t *testing.T) {
	var d SubscriptionDetails
	if err := json.Unmarshal([]byte(`{"package_id":"12"}`), &d); err != nil || d.PackageID != "12" {
		t.Fatalf("string id: %q %v", d.PackageID, err)
	}
	if err := json.Unmarshal([]byte(`{"package_id":34}`), &d); err != nil || d.PackageID != "34" {
		t.Fatalf("number id: %q %v", d.PackageID, err)
	}
}

func TestWorkshopListing_All(t *testing.T) {
	l := WorkshopListing{
		Live:     []Workshop{{ID: 1}, {ID: 2}},
		Recorded: []Workshop{{ID: 3}},
	}
	all := l.All()
	if len(all) != 3 || all[0].ID != 1 || all[2].ID != 3 {
		t.Fatalf("expected live then recorded, got %+v", all)
	}
}

func TestPaginate(t *testing.T) {
	all := make([]int, 20)
	for i := range all {
		all[i] = i
	}

	p := Paginate(all, 1, 9)
	if len(p.Items) != 9 || !p.HasMore {
		t.Fatalf("page 1: %+v", p)
	}
	p = Paginate(all, 3, 9)
	if len(p.Items) != 2 || p.HasMore || p.Items[0] != 18 {
		t.Fatalf("page 3: %+v", p)
	}
	p = Paginate(all, 5, 9)
	if len(p.Items) != 0 || p.HasMore {
		t.Fatalf("past the end: %+v", p)
	}
}

func TestNewRemotePage(t *testing.T) {
	if NewRemotePage(make([]int, 9), 1).HasMore {
		t.Fatalf("fewer than 10 items means last page")
	}
	if !NewRemotePage(make([]int, 10), 1).HasMore {
		t.Fatalf("a full page may have more")
	}
}

func TestDocumentKind_FileName(t *testing.T) {
	if got := DocumentCertificate.FileName("Yoga/Basics"); got != "Certificate-Yoga-Basics.pdf" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := DocumentInvoice.FileName("Art"); got != "Invoice-Art.pdf" {
		t.Fatalf("unexpected name %q", got)
	}
}
