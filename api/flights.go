package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Lỗi server khi lấy danh sách chuyến bay", err)
		return
	}
	respond(c, http.StatusOK, "", flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Mã chuyến bay không hợp lệ", nil)
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			respondError(c, http.StatusNotFound, "Không tìm thấy chuyến bay", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Lỗi server khi lấy thông tin chuyến bay", err)
		return
	}
	respond(c, http.StatusOK, "", flight)
}
