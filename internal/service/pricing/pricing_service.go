package pricing

import (
	"context"
	"fmt"
	"math"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/sirupsen/logrus"
)

type PricingUseCase interface {
	GetRules(ctx context.Context) (domain.PricingRules, error)
	UpdateRules(ctx context.Context, multipliers map[domain.PassengerType]float64) (domain.PricingRules, error)
}

type Cache interface {
	GetPricingRules(ctx context.Context) (*domain.PricingRules, error)
	SetPricingRules(ctx context.Context, rules domain.PricingRules) error
	InvalidatePricingRules(ctx context.Context) error
}

type PricingService struct {
	repo   repository.PricingRuleRepository
	cache  Cache
	logger logrus.FieldLogger
}

func NewPricingService(repo repository.PricingRuleRepository, cache Cache, logger logrus.FieldLogger) *PricingService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PricingService{repo: repo, cache: cache, logger: logger}
}

var defaultMultipliers = map[domain.PassengerType]float64{
	domain.PassengerAdult:  1.0,
	domain.PassengerChild:  0.75,
	domain.PassengerInfant: 0.1,
}

var localizedTypes = map[domain.PassengerType]string{
	domain.PassengerAdult:  "Giá vé người lớn",
	domain.PassengerChild:  "Giá vé trẻ em",
	domain.PassengerInfant: "Giá vé em bé",
}

// Describe renders the customer-facing label, e.g. "Giá vé trẻ em (75% giá gốc)".
func Describe(t domain.PassengerType, multiplier float64) string {
	return fmt.Sprintf("%s (%d%% giá gốc)", localizedTypes[t], int(math.Round(multiplier*100)))
}

func NewRule(t domain.PassengerType, multiplier float64) domain.PricingRule {
	return domain.PricingRule{
		PassengerType:   t,
		PriceMultiplier: multiplier,
		Description:     Describe(t, multiplier),
	}
}

func DefaultRules() domain.PricingRules {
	var rules domain.PricingRules
	for _, t := range domain.PassengerTypes {
		rules.Set(NewRule(t, defaultMultipliers[t]))
	}
	return rules
}

// GetRules returns the three-entry rule set; types missing from storage keep their defaults.
func (s *PricingService) GetRules(ctx context.Context) (domain.PricingRules, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPricingRules(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("pricing rules cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	stored, err := s.repo.List(ctx)
	if err != nil {
		return domain.PricingRules{}, fmt.Errorf("list pricing rules: %w", err)
	}

	rules := DefaultRules()
	for _, rule := range stored {
		if rule.PassengerType.Valid() {
			rules.Set(rule)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetPricingRules(ctx, rules); err != nil {
			s.logger.WithError(err).Warn("pricing rules cache write failed")
		}
	}
	return rules, nil
}

// UpdateRules persists the given multipliers with recomputed descriptions and
// returns the refreshed rule set. Types not in multipliers are left untouched.
func (s *PricingService) UpdateRules(ctx context.Context, multipliers map[domain.PassengerType]float64) (domain.PricingRules, error) {
	for t := range multipliers {
		if !t.Valid() {
			return domain.PricingRules{}, fmt.Errorf("%w: unknown passenger type %q", domain.ErrValidation, t)
		}
	}

	updates := make([]domain.PricingRule, 0, len(multipliers))
	for _, t := range domain.PassengerTypes {
		m, ok := multipliers[t]
		if !ok {
			continue
		}
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return domain.PricingRules{}, fmt.Errorf("%w: %s", domain.ErrInvalidMultiplier, t)
		}
		updates = append(updates, NewRule(t, m))
	}

	if len(updates) > 0 {
		if err := s.repo.Upsert(ctx, updates); err != nil {
			return domain.PricingRules{}, fmt.Errorf("update pricing rules: %w", err)
		}
		if s.cache != nil {
			if err := s.cache.InvalidatePricingRules(ctx); err != nil {
				s.logger.WithError(err).Warn("pricing rules cache invalidation failed")
			}
		}
		s.logger.WithField("types", len(updates)).Info("pricing rules updated")
	}

	return s.GetRules(ctx)
}

var _ PricingUseCase = (*PricingService)(nil)
