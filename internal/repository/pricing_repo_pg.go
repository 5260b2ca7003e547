package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/jmoiron/sqlx"
)

type PricingRuleRepository interface {
	List(ctx context.Context) ([]domain.PricingRule, error)
	Upsert(ctx context.Context, rules []domain.PricingRule) error
}

type PGPricingRuleRepository struct {
	db *sqlx.DB
}

func NewPricingRuleRepository(db *sqlx.DB) *PGPricingRuleRepository {
	return &PGPricingRuleRepository{db: db}
}

type pricingRuleRow struct {
	PassengerType   string         `db:"passenger_type"`
	PriceMultiplier float64        `db:"price_multiplier"`
	Description     sql.NullString `db:"description"`
}

func (r *PGPricingRuleRepository) List(ctx context.Context) ([]domain.PricingRule, error) {
	var rows []pricingRuleRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT passenger_type, price_multiplier, description FROM pricing_rules`); err != nil {
		return nil, err
	}

	rules := make([]domain.PricingRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, domain.PricingRule{
			PassengerType:   domain.PassengerType(row.PassengerType),
			PriceMultiplier: row.PriceMultiplier,
			Description:     row.Description.String,
		})
	}
	return rules, nil
}

// Upsert writes all rules in one transaction; rows for other passenger types are untouched.
func (r *PGPricingRuleRepository) Upsert(ctx context.Context, rules []domain.PricingRule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rule := range rules {
		if _, err := tx.ExecContext(ctx, `INSERT INTO pricing_rules (passenger_type, price_multiplier, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (passenger_type) DO UPDATE SET price_multiplier = EXCLUDED.price_multiplier, description = EXCLUDED.description`,
			string(rule.PassengerType), rule.PriceMultiplier, rule.Description); err != nil {
			return fmt.Errorf("upsert pricing rule %s: %w", rule.PassengerType, err)
		}
	}

	return tx.Commit()
}

var _ PricingRuleRepository = (*PGPricingRuleRepository)(nil)
