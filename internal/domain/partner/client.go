package partner

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/okayo/invoicing/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Client is a billed customer. Its identity is immutable once invoices
// reference it; there is no update or delete path.
type Client struct {
	shared.BaseEntity
	Code       string
	Name       string
	Address    string
	City       string
	PostalCode string
	Phone      string
	Email      string
	LegalForm  string
}

// ClientInput carries the raw fields of a client to create.
type ClientInput struct {
	Code       string
	Name       string
	Address    string
	City       string
	PostalCode string
	Phone      string
	Email      string
	LegalForm  string
}

// NewClient validates input and returns an unsaved client. Every invalid
// field is reported in the returned validation error.
func NewClient(in ClientInput) (*Client, error) {
	c := &Client{
		Code:       strings.TrimSpace(in.Code),
		Name:       strings.TrimSpace(in.Name),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		LegalForm:  strings.TrimSpace(in.LegalForm),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.CreatedAt = time.Now()
	return c, nil
}

func (c *Client) validate() error {
	var errs shared.ValidationErrors
	required(&errs, "code_client", c.Code, 20)
	required(&errs, "nom", c.Name, 100)
	required(&errs, "adresse", c.Address, 255)
	required(&errs, "ville", c.City, 100)
	required(&errs, "code_postal", c.PostalCode, 10)
	optional(&errs, "telephone", c.Phone, 20)
	optional(&errs, "forme_juridique", c.LegalForm, 50)
	if c.Email != "" {
		if utf8.RuneCountInString(c.Email) > 100 {
			errs.Add("email", "must not exceed 100 characters")
		} else if !emailRegex.MatchString(c.Email) {
			errs.Add("email", "must be a valid email address")
		}
	}
	return errs.Err()
}

func required(errs *shared.ValidationErrors, field, value string, max int) {
	if value == "" {
		errs.Add(field, "is required")
		return
	}
	optional(errs, field, value, max)
}

func optional(errs *shared.ValidationErrors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		errs.Addf(field, "must not exceed %d characters", max)
	}
}
