package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/service/pricing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPricingUseCase struct {
	mock.Mock
}

func (m *MockPricingUseCase) GetRules(ctx context.Context) (domain.PricingRules, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PricingRules), args.Error(1)
}

func (m *MockPricingUseCase) UpdateRules(ctx context.Context, multipliers map[domain.PassengerType]float64) (domain.PricingRules, error) {
	args := m.Called(ctx, multipliers)
	return args.Get(0).(domain.PricingRules), args.Error(1)
}

func newPricingRouter(service pricing.PricingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewPricingHandler(service).Register(router.Group("/api/flights"), passThrough)
	return router
}

func TestPricingHandler_get(t *testing.T) {
	mockService := &MockPricingUseCase{}
	router := newPricingRouter(mockService)

	mockService.On("GetRules", mock.Anything).Return(pricing.DefaultRules(), nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/pricing-rules", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]any)
	child := data["child"].(map[string]any)
	assert.Equal(t, 0.75, child["price_multiplier"])
	assert.Equal(t, "Giá vé trẻ em (75% giá gốc)", child["description"])
}

func TestPricingHandler_update(t *testing.T) {
	mockService := &MockPricingUseCase{}
	router := newPricingRouter(mockService)

	updated := pricing.DefaultRules()
	updated.Child = pricing.NewRule(domain.PassengerChild, 0.5)
	mockService.On("UpdateRules", mock.Anything, map[domain.PassengerType]float64{domain.PassengerChild: 0.5}).
		Return(updated, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/flights/pricing-rules",
		bytes.NewBufferString(`{"child": {"price_multiplier": 0.5}, "infant": {}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	child := decodeEnvelope(t, w)["data"].(map[string]any)["child"].(map[string]any)
	assert.Contains(t, child["description"], "50%")
	mockService.AssertExpectations(t)
}

func TestPricingHandler_update_InvalidMultiplier(t *testing.T) {
	mockService := &MockPricingUseCase{}
	router := newPricingRouter(mockService)

	mockService.On("UpdateRules", mock.Anything, mock.Anything).
		Return(domain.PricingRules{}, fmt.Errorf("%w: adult", domain.ErrInvalidMultiplier)).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/flights/pricing-rules", bytes.NewBufferString(`{"adult": {"price_multiplier": 0}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
