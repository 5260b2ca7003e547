package booking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/Domenick1991/airticket/internal/notify"
	"github.com/Domenick1991/airticket/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, code string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, code string, isPaid bool) (domain.PaymentTransition, error)
	DeleteBooking(ctx context.Context, code string) error
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

// FlightCatalog resolves a flight id to its current catalog entry.
// Implementations must not serve cached data: the result is frozen into the booking.
type FlightCatalog interface {
	Refresh(ctx context.Context, id int64) (*domain.Flight, error)
}

type BankProvider interface {
	GetBankConfig(ctx context.Context) (domain.BankConfig, error)
}

type BookingService struct {
	bookings      repository.BookingRepository
	flights       FlightCatalog
	bank          BankProvider
	notifier      notify.Notifier
	logger        logrus.FieldLogger
	validate      *validator.Validate
	notifyTimeout time.Duration
	inflight      sync.WaitGroup
}

type BookingServiceOption func(*BookingService)

func WithLogger(logger logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNotifyTimeout bounds each post-commit notification.
func WithNotifyTimeout(timeout time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.notifyTimeout = timeout
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights FlightCatalog,
	bank BankProvider,
	notifier notify.Notifier,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:      bookings,
		flights:       flights,
		bank:          bank,
		notifier:      notifier,
		logger:        logrus.StandardLogger(),
		validate:      newValidator(),
		notifyTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

type DateOfBirth struct {
	Day   string `json:"day" validate:"required,numeric"`
	Month string `json:"month" validate:"required,numeric"`
	Year  string `json:"year" validate:"required,numeric,len=4"`
}

// String joins the parts as given, without zero padding.
func (d DateOfBirth) String() string {
	return d.Year + "-" + d.Month + "-" + d.Day
}

type PersonalInput struct {
	FullName    string      `json:"fullName" validate:"required"`
	Gender      string      `json:"gender" validate:"required"`
	DateOfBirth DateOfBirth `json:"dateOfBirth"`
	IDNumber    string      `json:"idNumber" validate:"required"`
	Phone       string      `json:"phone" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
}

// CreateBookingInput is a booking request. A leg that carries only FlightID
// is filled from the flight catalog. Return is ignored for one-way trips.
type CreateBookingInput struct {
	Personal    PersonalInput          `json:"personalInfo"`
	TripType    domain.TripType        `json:"tripType" validate:"required,oneof=one-way round-trip"`
	Departure   domain.FlightSnapshot  `json:"departureFlight"`
	Return      *domain.FlightSnapshot `json:"returnFlight"`
	Passengers  domain.Passengers      `json:"passengers"`
	Prices      domain.Prices          `json:"prices"`
	TotalAmount float64                `json:"totalAmount" validate:"gte=0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	departure, err := s.resolveLeg(ctx, input.Departure, "departure")
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Personal: domain.PersonalInfo{
			FullName:    input.Personal.FullName,
			Gender:      input.Personal.Gender,
			DateOfBirth: input.Personal.DateOfBirth.String(),
			IDNumber:    input.Personal.IDNumber,
			Phone:       input.Personal.Phone,
			Email:       input.Personal.Email,
		},
		TripType:    input.TripType,
		Departure:   departure,
		Passengers:  input.Passengers,
		Prices:      input.Prices,
		TotalAmount: input.TotalAmount,
	}
	if input.TripType == domain.TripTypeRoundTrip {
		ret, err := s.resolveLeg(ctx, *input.Return, "return")
		if err != nil {
			return nil, err
		}
		booking.Return = &ret
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.logger.WithError(err).Error("booking create failed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_code": booking.Code,
		"trip_type":    booking.TripType,
	}).Info("booking created")

	s.notifyBookingCreated(ctx, *booking)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, code string) (*domain.Booking, error) {
	return s.bookings.GetByCode(ctx, code)
}

// UpdatePaymentStatus sets the paid flag. The payment confirmation is sent
// only for an Unpaid to Paid transition.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, code string, isPaid bool) (domain.PaymentTransition, error) {
	transition, err := s.bookings.UpdatePaymentStatus(ctx, code, isPaid)
	if err != nil {
		s.logger.WithError(err).WithField("booking_code", code).Error("payment status update failed")
		return domain.PaymentTransition{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_code": code,
		"found":        transition.Found,
		"is_paid":      transition.Current,
	}).Info("payment status updated")

	if transition.BecamePaid() {
		s.notifyPaid(ctx, code)
	}
	return transition, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, code string) error {
	if err := s.bookings.Delete(ctx, code); err != nil {
		return err
	}
	s.logger.WithField("booking_code", code).Info("booking deleted")
	return nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// Wait blocks until in-flight notifications have finished.
func (s *BookingService) Wait() {
	s.inflight.Wait()
}

func (s *BookingService) validateInput(input CreateBookingInput) error {
	if err := s.validate.Struct(input); err != nil {
		return validationError(err)
	}

	p := input.Passengers
	if p.Adults < 0 || p.Children < 0 || p.Infants < 0 {
		return fmt.Errorf("%w: passenger counts must not be negative", domain.ErrValidation)
	}
	if p.Total() == 0 {
		return fmt.Errorf("%w: at least one passenger is required", domain.ErrValidation)
	}
	if input.Prices.Adult < 0 || input.Prices.Child < 0 || input.Prices.Infant < 0 {
		return fmt.Errorf("%w: prices must not be negative", domain.ErrValidation)
	}
	if input.TripType == domain.TripTypeRoundTrip && input.Return == nil {
		return fmt.Errorf("%w: return flight is required for a round trip", domain.ErrValidation)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, ", "))
}

func (s *BookingService) resolveLeg(ctx context.Context, leg domain.FlightSnapshot, name string) (domain.FlightSnapshot, error) {
	if leg.Complete() {
		return leg, nil
	}
	if leg.FlightID <= 0 || s.flights == nil {
		return domain.FlightSnapshot{}, fmt.Errorf("%w: %s flight details are incomplete", domain.ErrValidation, name)
	}

	flight, err := s.flights.Refresh(ctx, leg.FlightID)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			return domain.FlightSnapshot{}, fmt.Errorf("%w: %s flight %d: %w", domain.ErrValidation, name, leg.FlightID, err)
		}
		return domain.FlightSnapshot{}, fmt.Errorf("lookup %s flight: %w", name, err)
	}
	return flight.Snapshot(), nil
}

func (s *BookingService) notifyBookingCreated(ctx context.Context, booking domain.Booking) {
	s.dispatch(ctx, booking.Code, "booking_confirmation", func(ctx context.Context) error {
		var bank domain.BankConfig
		if s.bank != nil {
			cfg, err := s.bank.GetBankConfig(ctx)
			if err != nil {
				return fmt.Errorf("load bank config: %w", err)
			}
			bank = cfg
		}

		return s.notifier.SendBookingConfirmation(ctx, domain.BookingConfirmation{
			To:          booking.Personal.Email,
			Name:        booking.Personal.FullName,
			BookingCode: booking.Code,
			Bank:        bank,
			Amount:      booking.TotalAmount,
			Departure:   booking.Departure,
			Passengers:  booking.Passengers,
			Return:      booking.Return,
		})
	})
}

func (s *BookingService) notifyPaid(ctx context.Context, code string) {
	s.dispatch(ctx, code, "payment_confirmation", func(ctx context.Context) error {
		booking, err := s.bookings.GetByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("reload booking: %w", err)
		}

		return s.notifier.SendPaymentConfirmation(ctx, domain.PaymentConfirmation{
			To:          booking.Personal.Email,
			Name:        booking.Personal.FullName,
			BookingCode: booking.Code,
			Amount:      booking.TotalAmount,
		})
	})
}

// dispatch runs send after the request has returned. Its outcome is only logged.
func (s *BookingService) dispatch(ctx context.Context, code, event string, send func(context.Context) error) {
	if s.notifier == nil {
		return
	}

	log := s.logger.WithFields(logrus.Fields{"booking_code": code, "event": event})
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			log.WithError(err).Error("notification failed")
			return
		}
		log.Info("notification sent")
	}()
}

var _ BookingUseCase = (*BookingService)(nil)
