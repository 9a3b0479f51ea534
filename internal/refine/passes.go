package refine

import (
	"fmt"
	"strings"

	"github.com/tlemoine/classeur/internal/categories"
	"github.com/tlemoine/classeur/internal/rules"
	"github.com/tlemoine/classeur/pkg/similarity"
)

// Explanation fragments. The manual-validation note embeds the ratio the AI
// originally assigned so reviewers can see how far the correction moved it.
const (
	noteManualValidation = " original_ratio=%d (manual validation) "
	noteManagement       = " (manual validation - management document) "
	noteBlankPage        = " (blank page detected) "
	noteCustomContext    = " (validated via custom context) "
	noteTextMatch        = " (counterparty name found in document text) "
	noteJokerFallback    = " (incoherent explanation - joker fallback) "
)

// RefineNames corrects a supplier/client classification by comparing the
// extracted party names against the case file identity. An issuer matching
// the case file means the document went out to a client; a recipient
// matching it means the document came in from a supplier. The client rule
// is evaluated first and the supplier rule may override it when at least as
// strong. A SIREN comparison is appended to the explanation for audit but
// never drives the decision.
func RefineNames(res Result, cf CaseFile) (Result, bool) {
	issuer := strings.ToUpper(res.Issuer)
	recipient := strings.ToUpper(res.Recipient)
	registered := strings.ToUpper(cf.RegisteredName)
	dossier := strings.ToUpper(cf.DossierName)

	clientScore := max(
		similarity.Score(issuer, registered),
		similarity.Score(issuer, dossier),
	)
	supplierScore := max(
		similarity.Score(recipient, registered),
		similarity.Score(recipient, dossier),
	)

	caseSiren := sirenPrefix(cf.Siren)
	issuerSiren := sirenPrefix(res.IssuerSiren)
	sirenScore := similarity.Score(caseSiren, issuerSiren)

	originalRatio := res.Ratio
	fired := false

	if clientScore > SimilarityThreshold {
		res.Category = categories.Client
		res.Ratio = clientScore
		res.Explanation += fmt.Sprintf(noteManualValidation, originalRatio)
		fired = true
	}

	if supplierScore > SimilarityThreshold && supplierScore >= clientScore {
		res.Category = categories.Supplier
		res.Ratio = supplierScore
		res.Explanation += fmt.Sprintf(noteManualValidation, originalRatio)
		fired = true
	}

	res.Explanation += fmt.Sprintf(
		"\n client_score: %d, supplier_score: %d, siren_score: %d,"+
			"\n case_siren: %s, issuer_siren: %s",
		clientScore, supplierScore, sirenScore, caseSiren, issuerSiren,
	)

	return res, fired
}

// ApplyManagementOverride forces the management category when the text is a
// management document. The explanation is replaced, not appended: the
// keyword hit invalidates whatever reasoning led here.
func ApplyManagementOverride(res Result, text string) (Result, bool) {
	if !IsManagementDocument(text) {
		return res, false
	}

	res.Category = categories.Management
	res.Ratio = 100
	res.Explanation = noteManagement
	return res, true
}

// ApplyBlankPage forces the unreadable category when the extracted text is
// blank. Runs for every category.
func ApplyBlankPage(res Result, text string) (Result, bool) {
	if !IsBlankPage(text) {
		return res, false
	}

	res.Category = categories.Unreadable
	res.Ratio = 100
	res.Explanation += noteBlankPage
	return res, true
}

// ApplyTextMatch sets the category decided by the counterparty text match,
// leaving the confidence ratio untouched: a directory hit identifies the
// side of the ledger, not how sure the extraction was.
func ApplyTextMatch(res Result, cat categories.Category) Result {
	res.Category = cat
	res.Explanation += noteTextMatch
	return res
}

// ApplyRule forces the category of a matched tenant correction rule. The
// ratio is pinned below a perfect score and the explanation is replaced.
func ApplyRule(res Result, r rules.Rule) Result {
	res.Category = r.Category
	res.Ratio = 95
	res.Explanation = noteCustomContext
	return res
}

// ApplyJokerFallback reroutes a document to the joker category when the
// upstream explanation fails the structural coherence check. The AI's
// explanation is the evidence, so aiExplanation must be the explanation as
// received, before any pass appended to it.
func ApplyJokerFallback(res Result, aiExplanation string) (Result, bool) {
	if ExplanationCoherent(aiExplanation) {
		return res, false
	}

	res.Category = categories.Joker
	res.Explanation += noteJokerFallback
	return res, true
}
