package invoicing

import (
	"fmt"
	"time"

	"github.com/okayo/invoicing/internal/domain/shared"
)

// Issuer is the invoicing organization itself.
type Issuer struct {
	ID         int64
	Name       string
	Address    string
	City       string
	PostalCode string
	Phone      string
	Website    string
	Siret      string
	VATNumber  string
}

// PaymentTerm is a payment condition printed on invoices.
type PaymentTerm struct {
	ID    int64
	Label string
}

// BankAccount is the account payments are expected on. The active one has
// no end date.
type BankAccount struct {
	ID         int64
	BankName   string
	HolderName string
	IBAN       string
	BIC        string
	ValidFrom  time.Time
	ValidTo    *time.Time
}

// Defaults groups the single-tenant references every new invoice points to.
type Defaults struct {
	Issuer      Issuer
	PaymentTerm PaymentTerm
	BankAccount BankAccount
}

// DefaultsPolicy decides how several candidate defaults are handled.
type DefaultsPolicy string

const (
	// DefaultsStrict fails when a default is missing or ambiguous.
	DefaultsStrict DefaultsPolicy = "strict"
	// DefaultsFirst takes the lowest id when several candidates exist.
	DefaultsFirst DefaultsPolicy = "first"
)

// IsValid reports whether the policy is known.
func (p DefaultsPolicy) IsValid() bool {
	return p == DefaultsStrict || p == DefaultsFirst
}

// PickDefault applies policy to candidates ordered by id ascending.
func PickDefault[T any](kind string, candidates []T, policy DefaultsPolicy) (T, error) {
	var zero T
	switch {
	case len(candidates) == 0:
		return zero, shared.NewInternalError(
			fmt.Sprintf("No default %s configured", kind),
			shared.NewDomainError(shared.CodeDefaultsNotConfigured, kind+" missing"))
	case len(candidates) > 1 && policy != DefaultsFirst:
		return zero, shared.NewInternalError(
			fmt.Sprintf("Several default %s candidates found", kind),
			shared.NewDomainError(shared.CodeAmbiguousDefaults, kind+" ambiguous"))
	}
	return candidates[0], nil
}
