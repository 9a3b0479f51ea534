package rules

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tlemoine/classeur/internal/categories"
	"github.com/tlemoine/classeur/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository creates a rule lookup backed by the tenant store's
// ai_separation_context table.
func NewRepository(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "rules"),
	}
}

type row struct {
	category  int
	pattern   string
	dossierID sql.NullInt64
	siteID    sql.NullInt64
	clientID  sql.NullInt64
}

func scanRow(s repository.Scanner) (row, error) {
	var r row
	if err := s.Scan(&r.category, &r.pattern, &r.dossierID, &r.siteID, &r.clientID); err != nil {
		return row{}, err
	}
	return r, nil
}

func (r *repo) Fetch(ctx context.Context, dossierID, siteID, clientID int) ([]Rule, error) {
	// Scope precedence (dossier > client > site > global) is resolved in the
	// query so callers receive a single ordered set; ties within a scope
	// break on recency.
	const q = `
		SELECT categorie_id, contexte, dossier_id, site_id, client_id
		FROM ai_separation_context
		WHERE dossier_id = $1
		   OR client_id = $2
		   OR (site_id = $3 AND dossier_id IS NULL)
		   OR (dossier_id IS NULL AND client_id IS NULL AND site_id IS NULL)
		ORDER BY
			CASE
				WHEN dossier_id IS NOT NULL THEN 0
				WHEN client_id IS NOT NULL THEN 1
				WHEN site_id IS NOT NULL THEN 2
				ELSE 3
			END,
			created_at DESC`

	found, err := repository.QueryMany(
		ctx, r.db, q,
		[]any{dossierID, clientID, siteID},
		scanRow,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch rules for dossier %d: %w", dossierID, err)
	}

	rs := make([]Rule, 0, len(found))
	for _, f := range found {
		rs = append(rs, Rule{
			Scope:    scopeOf(f),
			Category: categories.Category(f.category),
			Pattern:  f.pattern,
		})
	}

	r.logger.Debug("rules fetched",
		"dossier_id", dossierID,
		"site_id", siteID,
		"client_id", clientID,
		"count", len(rs),
	)
	return rs, nil
}

func scopeOf(f row) Scope {
	switch {
	case f.dossierID.Valid:
		return ScopeDossier
	case f.clientID.Valid:
		return ScopeClient
	case f.siteID.Valid:
		return ScopeSite
	default:
		return ScopeGlobal
	}
}
