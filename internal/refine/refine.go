// Package refine implements the classification refinement engine. It takes
// the noisy classification produced by the upstream AI step and corrects it
// against ground truth: the case file identity, the counterparty directory,
// tenant correction rules, and keyword detection over the extracted text.
// Every correction leaves a human-readable trace in the explanation trail.
//
// The passes are pure functions over value records and hold no state, so a
// single Pipeline is safe to share across concurrent workers.
package refine

import (
	"github.com/google/uuid"

	"github.com/tlemoine/classeur/internal/categories"
)

// SimilarityThreshold is the score a name comparison must strictly exceed
// for the name-similarity pass to recategorize a document. A tie at exactly
// this value does not trigger.
const SimilarityThreshold = 90

// sirenLength is the number of characters of a French business registration
// number considered for identity comparison.
const sirenLength = 9

// Result is the classification record produced by the AI step and corrected
// by the refinement passes. Issuer, Recipient, and IssuerSiren are empty
// strings when the extraction found nothing. Explanation is append-only
// except where a pass is documented to replace it.
type Result struct {
	Category       categories.Category `json:"category_id"`
	SubCategory    *int                `json:"sub_category_id"`
	SubSubCategory *int                `json:"sub_sub_category_id"`
	Ratio          int                 `json:"ratio"`
	Issuer         string              `json:"issuer"`
	Recipient      string              `json:"recipient"`
	IssuerSiren    string              `json:"issuer_siren"`
	Explanation    string              `json:"explanation"`
}

// CaseFile is the read-only identity of the dossier a document was scanned
// into. The refinement passes compare against it and never mutate it.
type CaseFile struct {
	DossierID      int    `json:"dossier_id"`
	SiteID         int    `json:"site_id"`
	ClientID       int    `json:"client_id"`
	RegisteredName string `json:"rs_ste"`
	DossierName    string `json:"dossier_nom"`
	Siren          string `json:"siren_ste"`
}

// Input bundles everything the pipeline needs to refine one document.
type Input struct {
	DocumentID uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Text       string    `json:"text"`
	Result     Result    `json:"result"`
	CaseFile   CaseFile  `json:"case_file"`
}

// Outcome is the explicit fail-open result of a pipeline run. Degraded is
// set when a ground-truth lookup failed and refinement proceeded with
// reduced signal; the Result is always usable.
type Outcome struct {
	Result   Result
	Degraded bool
}

// sirenPrefix truncates an extracted registration number to the comparable
// identifier length. Garbled extractions are often longer than nine runes.
func sirenPrefix(s string) string {
	r := []rune(s)
	if len(r) > sirenLength {
		r = r[:sirenLength]
	}
	return string(r)
}
