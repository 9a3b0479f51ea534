package refine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tlemoine/classeur/internal/categories"
	"github.com/tlemoine/classeur/internal/counterparty"
	"github.com/tlemoine/classeur/internal/rules"
)

// Pipeline runs the refinement passes over one document at a time. The
// ground-truth systems may be nil, in which case the corresponding passes
// degrade to no signal instead of failing the run.
type Pipeline struct {
	directory     counterparty.System
	rules         rules.System
	logger        *slog.Logger
	jokerFallback bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDirectory wires the counterparty directory lookup.
func WithDirectory(d counterparty.System) Option {
	return func(p *Pipeline) { p.directory = d }
}

// WithRules wires the tenant correction rule lookup.
func WithRules(r rules.System) Option {
	return func(p *Pipeline) { p.rules = r }
}

// WithJokerFallback enables rerouting structurally incoherent
// classifications to the joker category.
func WithJokerFallback(enabled bool) Option {
	return func(p *Pipeline) { p.jokerFallback = enabled }
}

func NewPipeline(logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: logger.With("system", "refine"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process refines a single classified document. Lookup failures never abort
// the run: the affected pass is skipped, the outcome is marked degraded,
// and every other pass still applies.
func (p *Pipeline) Process(ctx context.Context, in Input) Outcome {
	res := in.Result
	aiExplanation := in.Result.Explanation
	degraded := false

	cat, note := categories.NormalizeAICode(int(res.Category))
	res.Category = cat
	if note != "" {
		res.Explanation += fmt.Sprintf(" (%s) ", note)
	}

	if res.Category.Eligible() {
		dir, err := p.listDirectory(ctx, in)
		if err != nil {
			degraded = true
		}

		if detected, ok := counterparty.DetectCategory(in.Text, dir); ok && detected != res.Category {
			res = ApplyTextMatch(res, detected)
		}

		res, _ = RefineNames(res, in.CaseFile)
		res, _ = ApplyManagementOverride(res, in.Text)
	}

	res, _ = ApplyBlankPage(res, in.Text)

	matched, err := p.fetchRules(ctx, in)
	if err != nil {
		degraded = true
	}
	if r, ok := rules.Match(matched, in.Result.Issuer, in.Result.Recipient); ok {
		res = ApplyRule(res, r)
	}

	if p.jokerFallback && res.Category.Eligible() {
		res, _ = ApplyJokerFallback(res, aiExplanation)
	}

	return Outcome{Result: res, Degraded: degraded}
}

// listDirectory fetches the counterparty directory, degrading to an empty
// directory when the system is absent or the lookup fails.
func (p *Pipeline) listDirectory(ctx context.Context, in Input) (counterparty.Directory, error) {
	if p.directory == nil {
		return counterparty.Directory{}, fmt.Errorf("counterparty directory unavailable")
	}

	dir, err := p.directory.List(ctx, in.CaseFile.DossierID)
	if err != nil {
		p.logger.Warn("counterparty lookup failed, refining without directory",
			"document", in.DocumentID,
			"dossier", in.CaseFile.DossierID,
			"error", err,
		)
		return counterparty.Directory{}, fmt.Errorf("list counterparties: %w", err)
	}
	return dir, nil
}

// fetchRules fetches the tenant correction rules, degrading to none when
// the system is absent or the lookup fails.
func (p *Pipeline) fetchRules(ctx context.Context, in Input) ([]rules.Rule, error) {
	if p.rules == nil {
		return nil, fmt.Errorf("rule store unavailable")
	}

	rs, err := p.rules.Fetch(ctx, in.CaseFile.DossierID, in.CaseFile.SiteID, in.CaseFile.ClientID)
	if err != nil {
		p.logger.Warn("rule lookup failed, refining without custom rules",
			"document", in.DocumentID,
			"dossier", in.CaseFile.DossierID,
			"error", err,
		)
		return nil, fmt.Errorf("fetch rules: %w", err)
	}
	return rs, nil
}
