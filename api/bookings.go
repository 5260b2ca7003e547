package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the booking routes; payment and delete go through auth.
func (h *BookingHandler) Register(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.POST("/create", h.create)
	router.GET("", h.list)
	router.GET("/:code", h.get)
	router.PUT("/:code/payment", auth, h.updatePayment)
	router.DELETE("/:code", auth, h.delete)
}

// looseString accepts a JSON string or number.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

type createBookingRequest struct {
	PersonalInfo struct {
		FullName    string `json:"fullName"`
		Gender      string `json:"gender"`
		DateOfBirth struct {
			Day   looseString `json:"day"`
			Month looseString `json:"month"`
			Year  looseString `json:"year"`
		} `json:"dateOfBirth"`
		IDNumber string `json:"idNumber"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
	} `json:"personalInfo"`
	BookingInfo struct {
		TotalAmount     float64 `json:"totalAmount"`
		SelectedFlights struct {
			TripType        string         `json:"tripType"`
			DepartureFlight *flightPayload `json:"departureFlight"`
			ReturnFlight    *flightPayload `json:"returnFlight"`
			Passengers      struct {
				Adults   int `json:"adults"`
				Children int `json:"children"`
				Infants  int `json:"infants"`
			} `json:"passengers"`
			Price struct {
				AdultPrice  float64 `json:"adultPrice"`
				ChildPrice  float64 `json:"childPrice"`
				InfantPrice float64 `json:"infantPrice"`
			} `json:"price"`
		} `json:"selectedFlights"`
	} `json:"bookingInfo"`
}

type flightPayload struct {
	FlightID   int64   `json:"flightId"`
	FlightCode string  `json:"flightCode"`
	Airline    string  `json:"airline"`
	Price      float64 `json:"price"`
	Duration   int     `json:"duration"`
	Departure  struct {
		AirportCode   string    `json:"airportCode"`
		AirportName   string    `json:"airportName"`
		DepartureTime time.Time `json:"departureTime"`
	} `json:"departure"`
	Arrival struct {
		AirportCode string    `json:"airportCode"`
		AirportName string    `json:"airportName"`
		ArrivalTime time.Time `json:"arrivalTime"`
	} `json:"arrival"`
}

func (f *flightPayload) snapshot() domain.FlightSnapshot {
	if f == nil {
		return domain.FlightSnapshot{}
	}
	return domain.FlightSnapshot{
		FlightID:   f.FlightID,
		FlightCode: f.FlightCode,
		Airline:    f.Airline,
		Price:      f.Price,
		Duration:   f.Duration,
		Departure: domain.Endpoint{
			AirportCode: f.Departure.AirportCode,
			AirportName: f.Departure.AirportName,
			Time:        f.Departure.DepartureTime,
		},
		Arrival: domain.Endpoint{
			AirportCode: f.Arrival.AirportCode,
			AirportName: f.Arrival.AirportName,
			Time:        f.Arrival.ArrivalTime,
		},
	}
}

func (r createBookingRequest) toInput() booking.CreateBookingInput {
	p := r.PersonalInfo
	sf := r.BookingInfo.SelectedFlights

	input := booking.CreateBookingInput{
		Personal: booking.PersonalInput{
			FullName: p.FullName,
			Gender:   p.Gender,
			DateOfBirth: booking.DateOfBirth{
				Day:   string(p.DateOfBirth.Day),
				Month: string(p.DateOfBirth.Month),
				Year:  string(p.DateOfBirth.Year),
			},
			IDNumber: p.IDNumber,
			Phone:    p.Phone,
			Email:    p.Email,
		},
		TripType:  domain.TripType(sf.TripType),
		Departure: sf.DepartureFlight.snapshot(),
		Passengers: domain.Passengers{
			Adults:   sf.Passengers.Adults,
			Children: sf.Passengers.Children,
			Infants:  sf.Passengers.Infants,
		},
		Prices: domain.Prices{
			Adult:  sf.Price.AdultPrice,
			Child:  sf.Price.ChildPrice,
			Infant: sf.Price.InfantPrice,
		},
		TotalAmount: r.BookingInfo.TotalAmount,
	}
	if sf.ReturnFlight != nil {
		ret := sf.ReturnFlight.snapshot()
		input.Return = &ret
	}
	return input
}

type createBookingResponse struct {
	BookingCode string `json:"bookingCode"`
}

type updatePaymentRequest struct {
	IsPaid *bool `json:"isPaid" binding:"required"`
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Dữ liệu đặt vé không hợp lệ", err)
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), req.toInput())
	if err != nil {
		respondError(c, http.StatusBadRequest, "Đặt vé thất bại", err)
		return
	}

	respond(c, http.StatusCreated, "Đặt vé thành công", createBookingResponse{BookingCode: created.Code})
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetBooking(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			respondError(c, http.StatusNotFound, "Không tìm thấy thông tin đặt vé", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Lỗi server khi lấy thông tin đặt vé", err)
		return
	}
	respond(c, http.StatusOK, "", found)
}

func (h *BookingHandler) updatePayment(c *gin.Context) {
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		return
	}

	if _, err := h.service.UpdatePaymentStatus(c.Request.Context(), c.Param("code"), *req.IsPaid); err != nil {
		respondError(c, http.StatusBadRequest, "Cập nhật trạng thái thanh toán thất bại", err)
		return
	}
	respond(c, http.StatusOK, "Cập nhật trạng thái thanh toán thành công", nil)
}

func (h *BookingHandler) delete(c *gin.Context) {
	if err := h.service.DeleteBooking(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, http.StatusBadRequest, "Xóa đặt vé thất bại", err)
		return
	}
	respond(c, http.StatusOK, "Xóa đặt vé thành công", nil)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Lỗi server khi lấy danh sách đặt vé", err)
		return
	}

	message := ""
	if len(bookings) == 0 {
		message = "Không có đặt vé nào"
	}
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: bookings})
}
