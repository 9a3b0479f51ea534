package counterparty

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tlemoine/classeur/pkg/repository"
)

// Counterparty type codes in the tenant store's tiers table.
const (
	typeSupplier = 0
	typeClient   = 1
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository creates a directory lookup backed by the tenant store.
func NewRepository(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "counterparty"),
	}
}

type row struct {
	kind int
	name string
}

func scanRow(s repository.Scanner) (row, error) {
	var r row
	if err := s.Scan(&r.kind, &r.name); err != nil {
		return row{}, err
	}
	return r, nil
}

func (r *repo) List(ctx context.Context, dossierID int) (Directory, error) {
	const q = `
		SELECT type, intitule
		FROM tiers
		WHERE dossier_id = $1 AND type IN ($2, $3)
		ORDER BY id`

	rows, err := repository.QueryMany(
		ctx, r.db, q,
		[]any{dossierID, typeSupplier, typeClient},
		scanRow,
	)
	if err != nil {
		return Directory{}, fmt.Errorf("list counterparties for dossier %d: %w", dossierID, err)
	}

	var dir Directory
	for _, cp := range rows {
		switch cp.kind {
		case typeSupplier:
			dir.Suppliers = append(dir.Suppliers, cp.name)
		case typeClient:
			dir.Clients = append(dir.Clients, cp.name)
		}
	}

	r.logger.Debug("counterparties listed",
		"dossier_id", dossierID,
		"suppliers", len(dir.Suppliers),
		"clients", len(dir.Clients),
	)
	return dir, nil
}
