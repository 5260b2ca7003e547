package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/service/pricing"
	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	service pricing.PricingUseCase
}

func NewPricingHandler(service pricing.PricingUseCase) *PricingHandler {
	return &PricingHandler{service: service}
}

// Register mounts the rule routes; writes go through auth.
func (h *PricingHandler) Register(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.GET("/pricing-rules", h.get)
	router.PATCH("/pricing-rules", auth, h.update)
}

type pricingRuleUpdate struct {
	PriceMultiplier *float64 `json:"price_multiplier"`
}

func (h *PricingHandler) get(c *gin.Context) {
	rules, err := h.service.GetRules(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Lỗi server khi lấy quy tắc tính giá", err)
		return
	}
	respond(c, http.StatusOK, "", rules)
}

func (h *PricingHandler) update(c *gin.Context) {
	var req map[domain.PassengerType]pricingRuleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		return
	}

	multipliers := make(map[domain.PassengerType]float64, len(req))
	for t, rule := range req {
		if rule.PriceMultiplier != nil {
			multipliers[t] = *rule.PriceMultiplier
		}
	}

	rules, err := h.service.UpdateRules(c.Request.Context(), multipliers)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMultiplier) || errors.Is(err, domain.ErrValidation) {
			respondError(c, http.StatusBadRequest, "Hệ số giá không hợp lệ", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Lỗi server khi cập nhật quy tắc tính giá", err)
		return
	}
	respond(c, http.StatusOK, "Cập nhật quy tắc tính giá thành công", rules)
}
