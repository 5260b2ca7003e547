package repository

import (
	"context"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/jmoiron/sqlx"
)

const (
	configBankName    = "bank_name"
	configBankAccount = "bank_account"
	configBankBranch  = "bank_branch"
)

// PGSystemConfigRepository reads the system_configs key/value table.
type PGSystemConfigRepository struct {
	db       *sqlx.DB
	fallback domain.BankConfig
}

// NewSystemConfigRepository returns a store whose bank settings fall back to
// the given values for keys that are missing or empty in the table.
func NewSystemConfigRepository(db *sqlx.DB, fallback domain.BankConfig) *PGSystemConfigRepository {
	return &PGSystemConfigRepository{db: db, fallback: fallback}
}

type configRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

func (r *PGSystemConfigRepository) GetBankConfig(ctx context.Context) (domain.BankConfig, error) {
	var rows []configRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value FROM system_configs WHERE key IN ('bank_name', 'bank_account', 'bank_branch')`); err != nil {
		return domain.BankConfig{}, err
	}

	cfg := r.fallback
	for _, row := range rows {
		if row.Value == "" {
			continue
		}
		switch row.Key {
		case configBankName:
			cfg.Name = row.Value
		case configBankAccount:
			cfg.Account = row.Value
		case configBankBranch:
			cfg.Branch = row.Value
		}
	}
	return cfg, nil
}
