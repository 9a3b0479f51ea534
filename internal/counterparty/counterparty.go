// Package counterparty implements the case-file counterparty directory: the
// known supplier and client names used as ground truth when disambiguating
// supplier and client documents.
package counterparty

import (
	"context"
	"strings"

	"github.com/tlemoine/classeur/internal/categories"
	"github.com/tlemoine/classeur/pkg/textscan"
)

// Directory holds the known counterparty names for one case file. Both
// lists keep tenant-store order, may contain duplicates, and may be empty.
type Directory struct {
	Suppliers []string
	Clients   []string
}

// System defines the directory lookup contract. Implementations fetch fresh
// data on every call; results are never cached across documents.
type System interface {
	List(ctx context.Context, dossierID int) (Directory, error)
}

// ignoreWords are tokens that never count as a counterparty match even when
// found verbatim in document text: legal-suffix noise and words too common
// on invoices to carry signal. Membership is checked against the directory
// name exactly as stored.
var ignoreWords = map[string]struct{}{
	"SARL":     {},
	"EURL":     {},
	"SAS":      {},
	"SASU":     {},
	"SA":       {},
	"Total":    {},
	"ACTION":   {},
	"INTERNET": {},
	"TOTAL":    {},
}

// DetectCategory searches the document text for known counterparty names
// using whole-word, case-insensitive matching. A hit on exactly one side of
// the directory decides the category; hits on both sides or neither return
// false, leaving the ambiguity to the name-similarity pass.
func DetectCategory(text string, dir Directory) (categories.Category, bool) {
	isSupplier := anyNameInText(text, dir.Suppliers)
	isClient := anyNameInText(text, dir.Clients)

	switch {
	case isSupplier && !isClient:
		return categories.Supplier, true
	case isClient && !isSupplier:
		return categories.Client, true
	default:
		return 0, false
	}
}

func anyNameInText(text string, names []string) bool {
	for _, name := range names {
		if _, skip := ignoreWords[name]; skip {
			continue
		}
		if textscan.ContainsWord(text, name) {
			return true
		}
	}
	return false
}

// ParseLegacyList parses the serialized "[ a, b ]" list form the intranet
// passes counterparty names around in, returning the discrete name tokens.
func ParseLegacyList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var names []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// LegacyLists renders both sides of the directory in the serialized list
// form, suppliers first.
func (d Directory) LegacyLists() (suppliers, clients string) {
	return renderLegacyList(d.Suppliers), renderLegacyList(d.Clients)
}

func renderLegacyList(names []string) string {
	return "[ " + strings.Join(names, ", ") + " ]"
}
