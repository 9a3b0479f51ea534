package refine

import (
	"regexp"
	"strings"
)

// The AI step justifies supplier/client decisions with a fixed French
// sentence comparing the issuer's SIREN and registered name against the
// dossier's. The coherence check parses that sentence and verifies the
// claim it makes actually holds.
var explanationPattern = regexp.MustCompile(`(?i)^document\s+(fournisseur|client)\s+car\s+le\s+siren\s+de\s+l['’]émetteur\s*\(\s*(\d{9})\s*\)\s+est\s+différent\s+de\s+celui\s+du\s+dossier\s*\(\s*(\d{9})\s*\)\s+et\s+la\s+raison\s+sociale\s+de\s+l['’]émetteur\s*\(\s*([^()]+?)\s*\)\s+est\s+différente\s+de\s+celle\s+du\s+dossier\s*\(\s*([^()]+?)\s*\)\s*$`)

// ExplanationCoherent reports whether an upstream explanation sentence is
// structurally valid and internally consistent. A supplier claim must name
// a SIREN and a registered name that genuinely differ from the dossier's;
// a client claim is accepted as stated. Sentences that do not follow the
// expected format are incoherent.
func ExplanationCoherent(explanation string) bool {
	m := explanationPattern.FindStringSubmatch(explanation)
	if m == nil {
		return false
	}

	kind := strings.ToLower(m[1])
	issuerSiren := strings.TrimSpace(m[2])
	dossierSiren := strings.TrimSpace(m[3])
	issuerName := strings.ToUpper(strings.TrimSpace(m[4]))
	dossierName := strings.ToUpper(strings.TrimSpace(m[5]))

	switch kind {
	case "fournisseur":
		return issuerSiren != dossierSiren && issuerName != dossierName
	case "client":
		return true
	default:
		return false
	}
}
