package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FlexibleID accepts an id sent either as a JSON number or a JSON string.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// Credentials is the login form.
type Credentials struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryID   int64  `json:"country_id"`
	CountryCode string `json:"-"`
}

// Registration is the sign-up form.
type Registration struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryID   int64  `json:"country_id"`
	CountryCode string `json:"-"`
}

// AuthResult is what login and register return; Token may be empty.
type AuthResult struct {
	Token string `json:"token"`
}

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type Attachment struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	File         string `json:"file"`
	Availability string `json:"availability,omitempty"`
}

type WorkshopFile struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	File         string `json:"file"`
	Availability string `json:"availability,omitempty"`
}

type Recording struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	IsAvailable  bool   `json:"is_available"`
	Link         string `json:"link,omitempty"`
	Availability string `json:"availability,omitempty"`
}

type Subscription struct {
	ID                    int64          `json:"id"`
	Workshop              Workshop       `json:"workshop"`
	Attachments           []Attachment   `json:"attachments,omitempty"`
	Files                 []WorkshopFile `json:"files,omitempty"`
	Recordings            []Recording    `json:"recordings,omitempty"`
	OnlineLink            string         `json:"online_link,omitempty"`
	CanInstallCertificate bool           `json:"can_install_certificate,omitempty"`
}

type Profile struct {
	ID                  int64          `json:"id"`
	FullName            string         `json:"full_name"`
	Email               string         `json:"email"`
	Phone               string         `json:"phone"`
	ActiveSubscriptions []Subscription `json:"active_subscriptions"`
}

// FindSubscription returns the active subscription with the given id.
func (p Profile) FindSubscription(id int64) (Subscription, bool) {
	for _, s := range p.ActiveSubscriptions {
		if s.ID == id {
			return s, true
		}
	}
	return Subscription{}, false
}

// Review is a workshop rating left from the profile page.
type Review struct {
	SubscriptionID int64
	WorkshopID     int64
	Rating         int
	Comment        string
}

// DocumentKind selects the file served for a subscription.
type DocumentKind string

const (
	DocumentCertificate DocumentKind = "certificate"
	DocumentInvoice     DocumentKind = "invoice"
)

func (k DocumentKind) Valid() bool {
	return k == DocumentCertificate || k == DocumentInvoice
}

// FileName is the download name used for a document of workshop title.
func (k DocumentKind) FileName(title string) string {
	prefix := "Invoice"
	if k == DocumentCertificate {
		prefix = "Certificate"
	}
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			return '-'
		}
		return r
	}, title)
	return fmt.Sprintf("%s-%s.pdf", prefix, title)
}

// Document is a streamed file. The caller must close Body.
type Document struct {
	ContentType string
	Body        io.ReadCloser
}
