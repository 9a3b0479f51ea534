// Package categories defines the closed enumeration of accounting document
// categories and the mapping from the legacy integer codes used by the
// upstream AI classifier and the tenant store. The numeric values are wire
// and storage identifiers; they are declared here once and nowhere else.
package categories

import "fmt"

// Category identifies a document category using its legacy integer code.
type Category int

// Document categories.
const (
	Client     Category = 9
	Supplier   Category = 10
	Bank       Category = 16
	Unreadable Category = 18
	Social     Category = 20
	Tax        Category = 21
	Mail       Category = 23
	Legal      Category = 24
	Management Category = 25
	Joker      Category = 49
)

// SubCategory identifies a document sub-category.
type SubCategory int

// Document sub-categories.
const (
	SubBankStatement SubCategory = 10
)

// legacySupplierAlias is an obsolete supplier code the AI classifier still
// emits on occasion; NormalizeAICode folds it into Supplier.
const legacySupplierAlias = 14

var names = map[Category]string{
	Client:     "client",
	Supplier:   "supplier",
	Bank:       "bank",
	Unreadable: "unreadable",
	Social:     "social",
	Tax:        "tax",
	Mail:       "mail",
	Legal:      "legal",
	Management: "management",
	Joker:      "joker",
}

// Name returns the lowercase label for the category, or "unknown" for codes
// outside the enumeration.
func (c Category) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether the category is part of the enumeration.
func (c Category) Valid() bool {
	_, ok := names[c]
	return ok
}

// Eligible reports whether the category requires name-based disambiguation.
// Only supplier and client documents carry issuer/recipient signal worth
// validating against the case file identity.
func (c Category) Eligible() bool {
	return c == Supplier || c == Client
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return fmt.Sprintf("%s(%d)", c.Name(), int(c))
}

// NormalizeAICode maps a raw category code from the AI classifier onto the
// enumeration. The obsolete supplier alias is folded into Supplier and the
// returned note records the switch for the explanation trail; every other
// code passes through unchanged with an empty note.
func NormalizeAICode(code int) (Category, string) {
	if code == legacySupplierAlias {
		return Supplier, "switched to supplier category"
	}
	return Category(code), ""
}
