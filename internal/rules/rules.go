// Package rules implements tenant-defined correction rules: free-text
// patterns mapped to a forced category, scoped to a dossier, a client, a
// site, or globally. Rules are the strongest override in the refinement
// pipeline short of the blank-page check.
package rules

import (
	"context"

	"github.com/tlemoine/classeur/internal/categories"
	"github.com/tlemoine/classeur/pkg/similarity"
)

// MatchThreshold is the minimum similarity score between a rule pattern and
// an extracted party name for the rule to fire. Inclusive.
const MatchThreshold = 98

// Scope identifies the level of the tenant hierarchy a rule is attached to.
type Scope string

// Rule scopes, most specific first.
const (
	ScopeDossier Scope = "dossier"
	ScopeClient  Scope = "client"
	ScopeSite    Scope = "site"
	ScopeGlobal  Scope = "global"
)

// Rule forces a category when its pattern matches an extracted party name.
type Rule struct {
	Scope    Scope
	Category categories.Category
	Pattern  string
}

// System defines the rule lookup contract. Implementations return the rules
// applicable to the given scope chain as a single ordered set, most specific
// scope first, global rules last.
type System interface {
	Fetch(ctx context.Context, dossierID, siteID, clientID int) ([]Rule, error)
}

// Match returns the first rule whose pattern scores at least MatchThreshold
// against the issuer or the recipient name. Rules are evaluated in the order
// given, so scope precedence is whatever the lookup produced.
func Match(rs []Rule, issuer, recipient string) (Rule, bool) {
	for _, r := range rs {
		if similarity.Score(r.Pattern, issuer) >= MatchThreshold ||
			similarity.Score(r.Pattern, recipient) >= MatchThreshold {
			return r, true
		}
	}
	return Rule{}, false
}
