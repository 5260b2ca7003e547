package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPricingRuleRepository struct {
	mock.Mock
}

func (m *MockPricingRuleRepository) List(ctx context.Context) ([]domain.PricingRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingRule), args.Error(1)
}

func (m *MockPricingRuleRepository) Upsert(ctx context.Context, rules []domain.PricingRule) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetPricingRules(ctx context.Context) (*domain.PricingRules, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRules), args.Error(1)
}

func (m *MockCache) SetPricingRules(ctx context.Context, rules domain.PricingRules) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockCache) InvalidatePricingRules(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Giá vé người lớn (100% giá gốc)", Describe(domain.PassengerAdult, 1))
	assert.Equal(t, "Giá vé trẻ em (75% giá gốc)", Describe(domain.PassengerChild, 0.75))
	assert.Equal(t, "Giá vé em bé (10% giá gốc)", Describe(domain.PassengerInfant, 0.1))
	assert.Equal(t, "Giá vé trẻ em (33% giá gốc)", Describe(domain.PassengerChild, 0.333))
}

func TestPricingService_GetRules_DefaultsWhenStoreEmpty(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	service := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.PricingRule{}, nil).Once()

	rules, err := service.GetRules(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1.0, rules.Adult.PriceMultiplier)
	assert.Equal(t, 0.75, rules.Child.PriceMultiplier)
	assert.Equal(t, 0.1, rules.Infant.PriceMultiplier)
	assert.Equal(t, "Giá vé trẻ em (75% giá gốc)", rules.Child.Description)
	repo.AssertExpectations(t)
}

func TestPricingService_GetRules_StoredOverridesDefaults(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	cache := &MockCache{}
	service := NewPricingService(repo, cache, nil)
	ctx := context.Background()

	stored := []domain.PricingRule{
		{PassengerType: domain.PassengerChild, PriceMultiplier: 0.5, Description: "Giá vé trẻ em (50% giá gốc)"},
		{PassengerType: "senior", PriceMultiplier: 0.9, Description: "ignored"},
	}
	expected := DefaultRules()
	expected.Child = stored[0]

	cache.On("GetPricingRules", ctx).Return(nil, nil).Once()
	repo.On("List", ctx).Return(stored, nil).Once()
	cache.On("SetPricingRules", ctx, expected).Return(nil).Once()

	rules, err := service.GetRules(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, rules)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPricingService_GetRules_CacheHit(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	cache := &MockCache{}
	service := NewPricingService(repo, cache, nil)
	ctx := context.Background()

	cached := DefaultRules()
	cache.On("GetPricingRules", ctx).Return(&cached, nil).Once()

	rules, err := service.GetRules(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, rules)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestPricingService_GetRules_CacheErrorFallsBackToStore(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	cache := &MockCache{}
	logger, hook := test.NewNullLogger()
	service := NewPricingService(repo, cache, logger)
	ctx := context.Background()

	cache.On("GetPricingRules", ctx).Return(nil, errors.New("redis down")).Once()
	repo.On("List", ctx).Return([]domain.PricingRule{}, nil).Once()
	cache.On("SetPricingRules", ctx, DefaultRules()).Return(errors.New("redis down")).Once()

	rules, err := service.GetRules(ctx)

	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestPricingService_GetRules_StoreError(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	service := NewPricingService(repo, nil, nil)
	ctx := context.Background()

	repo.On("List", ctx).Return(nil, errors.New("database error")).Once()

	_, err := service.GetRules(ctx)

	assert.Error(t, err)
}

func TestPricingService_UpdateRules_Partial(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	cache := &MockCache{}
	service := NewPricingService(repo, cache, nil)
	ctx := context.Background()

	childRule := domain.PricingRule{PassengerType: domain.PassengerChild, PriceMultiplier: 0.5, Description: "Giá vé trẻ em (50% giá gốc)"}
	expected := DefaultRules()
	expected.Child = childRule

	repo.On("Upsert", ctx, []domain.PricingRule{childRule}).Return(nil).Once()
	cache.On("InvalidatePricingRules", ctx).Return(nil).Once()
	cache.On("GetPricingRules", ctx).Return(nil, nil).Once()
	repo.On("List", ctx).Return([]domain.PricingRule{childRule}, nil).Once()
	cache.On("SetPricingRules", ctx, expected).Return(nil).Once()

	rules, err := service.UpdateRules(ctx, map[domain.PassengerType]float64{domain.PassengerChild: 0.5})

	require.NoError(t, err)
	assert.Contains(t, rules.Child.Description, "50%")
	assert.Equal(t, 1.0, rules.Adult.PriceMultiplier)
	assert.Equal(t, 0.1, rules.Infant.PriceMultiplier)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestPricingService_UpdateRules_RejectsNonPositive(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	service := NewPricingService(repo, nil, nil)

	for _, m := range []float64{0, -0.5} {
		_, err := service.UpdateRules(context.Background(), map[domain.PassengerType]float64{
			domain.PassengerAdult:  1.2,
			domain.PassengerInfant: m,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidMultiplier)
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPricingService_UpdateRules_UnknownType(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	service := NewPricingService(repo, nil, nil)

	_, err := service.UpdateRules(context.Background(), map[domain.PassengerType]float64{"senior": 0.8})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestPricingService_UpdateRules_StoreError(t *testing.T) {
	repo := &MockPricingRuleRepository{}
	cache := &MockCache{}
	service := NewPricingService(repo, cache, nil)
	ctx := context.Background()

	repo.On("Upsert", ctx, mock.Anything).Return(errors.New("check constraint")).Once()

	_, err := service.UpdateRules(ctx, map[domain.PassengerType]float64{domain.PassengerAdult: 1.1})

	assert.Error(t, err)
	cache.AssertNotCalled(t, "InvalidatePricingRules", mock.Anything)
}
