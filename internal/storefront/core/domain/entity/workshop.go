package entity

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type Workshop struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	Teacher             string `json:"teacher"`
	TypeLabel           string `json:"type_label"`
	DateRange           string `json:"date_range"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time,omitempty"`
	Address             string `json:"address,omitempty"`
	HasMultiplePackages bool   `json:"has_multiple_packages"`
}

// WorkshopListing is the raw GET /workshops payload.
type WorkshopListing struct {
	Live     []Workshop `json:"live_workshops"`
	Recorded []Workshop `json:"recorded_workshops"`
}

// All returns live workshops followed by recorded ones.
func (l WorkshopListing) All() []Workshop {
	out := make([]Workshop, 0, len(l.Live)+len(l.Recorded))
	out = append(out, l.Live...)
	return append(out, l.Recorded...)
}

type Package struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Features    Features        `json:"features,omitempty"`
}

type WorkshopDetails struct {
	Workshop
	Description         string    `json:"description,omitempty"`
	SubjectOfDiscussion string    `json:"subject_of_discussion,omitempty"`
	Packages            []Package `json:"packages"`
}

// Features is a package's feature list. The API sends either a JSON array
// of strings or a single HTML string, possibly a <ul> of <li> items.
type Features []string

var liPattern = regexp.MustCompile(`(?s)<li>(.*?)</li>`)

func (f *Features) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// null or an unexpected shape: no features
		*f = nil
		return nil
	}
	*f = ParseFeatures(s)
	return nil
}

// ParseFeatures splits an HTML feature string into its <li> items.
func ParseFeatures(s string) Features {
	for _, tag := range []string{"<ul>", "</ul>", "<ol>", "</ol>"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	if s == "" {
		return nil
	}
	if !strings.Contains(s, "<li>") {
		return Features{s}
	}
	var out Features
	for _, m := range liPattern.FindAllStringSubmatch(s, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// Top returns at most n features, the number the package card shows.
func (f Features) Top(n int) Features {
	if len(f) <= n {
		return f
	}
	return f[:n]
}

// SubscriptionType is who a workshop subscription is for.
type SubscriptionType string

const (
	SubscriptionSelf SubscriptionType = "self"
	SubscriptionGift SubscriptionType = "gift"
)

// SubscriptionRequest is the subscription form. Self subscriptions use
// FullName/Email/Phone, gifts use the Recipient fields and Message.
type SubscriptionRequest struct {
	PackageID      int64
	Type           SubscriptionType
	FullName       string
	Email          string
	Phone          string
	CountryID      int64
	RecipientName  string
	RecipientPhone string
	Message        string
}

type SubscriptionDetails struct {
	WorkshopID    int64           `json:"workshop_id"`
	WorkshopTitle string          `json:"workshop_title"`
	PackageID     FlexibleID      `json:"package_id"`
	PackageTitle  string          `json:"package_title"`
	Price         decimal.Decimal `json:"price"`
}

type SubscriptionResult struct {
	SubscriptionID int64               `json:"subscription_id"`
	Details        SubscriptionDetails `json:"subscription_details"`
	PaymentOptions PaymentOptions      `json:"payment_options"`
	BankAccount    *BankAccount        `json:"bank_account,omitempty"`
}

// JoinInfo is the live session link returned by the join endpoint.
type JoinInfo struct {
	ZoomLink string `json:"zoom_link"`
}
