package refine

import "strings"

// managementKeywords identify internal management paperwork. Matching is a
// case-sensitive substring search on the literal strings: the OCR output
// this engine sees is uppercased French, and lowercase occurrences are
// treated as noise.
var managementKeywords = []string{
	"BON DE LIVRAISON",
	"RELEVE COMPTE CLIENT",
	"RELEVE DE FACTURES",
}

// IsBlankPage reports whether the extracted text is empty once surrounding
// whitespace is trimmed.
func IsBlankPage(text string) bool {
	return strings.TrimSpace(text) == ""
}

// IsManagementDocument reports whether the extracted text carries a
// management keyword while not mentioning "FACTURE" anywhere. An invoice
// that happens to reference a delivery note stays an invoice.
func IsManagementDocument(text string) bool {
	if strings.Contains(text, "FACTURE") {
		return false
	}

	for _, kw := range managementKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
