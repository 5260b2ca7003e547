package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, code string, isPaid bool) (domain.PaymentTransition, error)
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]domain.Booking, error)
}

const (
	uniqueViolation       = "23505"
	bookingCodeConstraint = "booking_history_booking_code_key"
)

var bookingColumns = []string{
	"booking_code", "full_name", "gender", "date_of_birth", "id_number",
	"phone", "email", "trip_type", "total_amount", "booking_date", "is_paid",
	"departure_flight_id", "departure_flight_code", "departure_airline",
	"departure_price", "departure_duration", "departure_from_code",
	"departure_from_name", "departure_time", "departure_to_code",
	"departure_to_name", "departure_arrival_time",
	"return_flight_id", "return_flight_code", "return_airline",
	"return_price", "return_duration", "return_from_code",
	"return_from_name", "return_time", "return_to_code",
	"return_to_name", "return_arrival_time",
	"adult_count", "child_count", "infant_count",
	"adult_price", "child_price", "infant_price",
}

var (
	insertBookingSQL = buildInsertBooking()
	selectBookingSQL = `SELECT id, ` + strings.Join(bookingColumns, ", ") + ` FROM booking_history`
)

func buildInsertBooking() string {
	placeholders := make([]string, len(bookingColumns))
	for i := range bookingColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return `INSERT INTO booking_history (` + strings.Join(bookingColumns, ", ") +
		`) VALUES (` + strings.Join(placeholders, ", ") + `) RETURNING id`
}

type PGBookingRepository struct {
	db       *sqlx.DB
	newCode  func() string
	attempts int
	now      func() time.Time
}

// NewBookingRepository builds the booking store. newCode is called once per
// insert attempt; attempts bounds the regenerate-on-conflict loop.
func NewBookingRepository(db *sqlx.DB, newCode func() string, attempts int) *PGBookingRepository {
	if attempts <= 0 {
		attempts = 1
	}
	return &PGBookingRepository{
		db:       db,
		newCode:  newCode,
		attempts: attempts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create persists the booking in a single transaction. On success booking.Code,
// booking.ID and booking.BookingDate are filled and IsPaid is false.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.IsPaid = false
	booking.BookingDate = r.now()
	if booking.TripType == domain.TripTypeOneWay {
		booking.Return = nil
	}

	for attempt := 0; attempt < r.attempts; attempt++ {
		booking.Code = r.newCode()
		err := r.insert(ctx, booking)
		if err == nil {
			return nil
		}
		if !isBookingCodeConflict(err) {
			booking.Code = ""
			return fmt.Errorf("insert booking: %w", err)
		}
	}

	booking.Code = ""
	return domain.ErrCodeExhausted
}

func (r *PGBookingRepository) insert(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := toBookingRow(booking)
	if err := tx.QueryRowxContext(ctx, insertBookingSQL, row.insertArgs()...).Scan(&booking.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGBookingRepository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, selectBookingSQL+` WHERE booking_code = $1`, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	b := row.toDomain()
	return &b, nil
}

// UpdatePaymentStatus sets is_paid and reports the previous value so callers
// can tell a real transition from a repeated call. An unknown code is not an error.
func (r *PGBookingRepository) UpdatePaymentStatus(ctx context.Context, code string, isPaid bool) (domain.PaymentTransition, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.PaymentTransition{}, err
	}
	defer tx.Rollback()

	var previous bool
	err = tx.QueryRowxContext(ctx, `SELECT is_paid FROM booking_history WHERE booking_code = $1 FOR UPDATE`, code).Scan(&previous)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PaymentTransition{Current: isPaid}, nil
	}
	if err != nil {
		return domain.PaymentTransition{}, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE booking_history SET is_paid = $1 WHERE booking_code = $2`, isPaid, code); err != nil {
		return domain.PaymentTransition{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.PaymentTransition{}, err
	}

	return domain.PaymentTransition{Found: true, Previous: previous, Current: isPaid}, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, code string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM booking_history WHERE booking_code = $1`, code)
	return err
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, selectBookingSQL+` ORDER BY booking_date DESC`); err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, row.toDomain())
	}
	return bookings, nil
}

func isBookingCodeConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == bookingCodeConstraint
}

type bookingRow struct {
	ID          int64     `db:"id"`
	BookingCode string    `db:"booking_code"`
	FullName    string    `db:"full_name"`
	Gender      string    `db:"gender"`
	DateOfBirth string    `db:"date_of_birth"`
	IDNumber    string    `db:"id_number"`
	Phone       string    `db:"phone"`
	Email       string    `db:"email"`
	TripType    string    `db:"trip_type"`
	TotalAmount float64   `db:"total_amount"`
	BookingDate time.Time `db:"booking_date"`
	IsPaid      bool      `db:"is_paid"`

	DepartureFlightID    int64     `db:"departure_flight_id"`
	DepartureFlightCode  string    `db:"departure_flight_code"`
	DepartureAirline     string    `db:"departure_airline"`
	DeparturePrice       float64   `db:"departure_price"`
	DepartureDuration    int       `db:"departure_duration"`
	DepartureFromCode    string    `db:"departure_from_code"`
	DepartureFromName    string    `db:"departure_from_name"`
	DepartureTime        time.Time `db:"departure_time"`
	DepartureToCode      string    `db:"departure_to_code"`
	DepartureToName      string    `db:"departure_to_name"`
	DepartureArrivalTime time.Time `db:"departure_arrival_time"`

	ReturnFlightID    sql.NullInt64   `db:"return_flight_id"`
	ReturnFlightCode  sql.NullString  `db:"return_flight_code"`
	ReturnAirline     sql.NullString  `db:"return_airline"`
	ReturnPrice       sql.NullFloat64 `db:"return_price"`
	ReturnDuration    sql.NullInt32   `db:"return_duration"`
	ReturnFromCode    sql.NullString  `db:"return_from_code"`
	ReturnFromName    sql.NullString  `db:"return_from_name"`
	ReturnTime        sql.NullTime    `db:"return_time"`
	ReturnToCode      sql.NullString  `db:"return_to_code"`
	ReturnToName      sql.NullString  `db:"return_to_name"`
	ReturnArrivalTime sql.NullTime    `db:"return_arrival_time"`

	AdultCount  int     `db:"adult_count"`
	ChildCount  int     `db:"child_count"`
	InfantCount int     `db:"infant_count"`
	AdultPrice  float64 `db:"adult_price"`
	ChildPrice  float64 `db:"child_price"`
	InfantPrice float64 `db:"infant_price"`
}

func toBookingRow(b *domain.Booking) bookingRow {
	row := bookingRow{
		ID:          b.ID,
		BookingCode: b.Code,
		FullName:    b.Personal.FullName,
		Gender:      b.Personal.Gender,
		DateOfBirth: b.Personal.DateOfBirth,
		IDNumber:    b.Personal.IDNumber,
		Phone:       b.Personal.Phone,
		Email:       b.Personal.Email,
		TripType:    string(b.TripType),
		TotalAmount: b.TotalAmount,
		BookingDate: b.BookingDate,
		IsPaid:      b.IsPaid,

		DepartureFlightID:    b.Departure.FlightID,
		DepartureFlightCode:  b.Departure.FlightCode,
		DepartureAirline:     b.Departure.Airline,
		DeparturePrice:       b.Departure.Price,
		DepartureDuration:    b.Departure.Duration,
		DepartureFromCode:    b.Departure.Departure.AirportCode,
		DepartureFromName:    b.Departure.Departure.AirportName,
		DepartureTime:        b.Departure.Departure.Time,
		DepartureToCode:      b.Departure.Arrival.AirportCode,
		DepartureToName:      b.Departure.Arrival.AirportName,
		DepartureArrivalTime: b.Departure.Arrival.Time,

		AdultCount:  b.Passengers.Adults,
		ChildCount:  b.Passengers.Children,
		InfantCount: b.Passengers.Infants,
		AdultPrice:  b.Prices.Adult,
		ChildPrice:  b.Prices.Child,
		InfantPrice: b.Prices.Infant,
	}

	if ret := b.Return; ret != nil {
		row.ReturnFlightID = sql.NullInt64{Int64: ret.FlightID, Valid: true}
		row.ReturnFlightCode = sql.NullString{String: ret.FlightCode, Valid: true}
		row.ReturnAirline = sql.NullString{String: ret.Airline, Valid: true}
		row.ReturnPrice = sql.NullFloat64{Float64: ret.Price, Valid: true}
		row.ReturnDuration = sql.NullInt32{Int32: int32(ret.Duration), Valid: true}
		row.ReturnFromCode = sql.NullString{String: ret.Departure.AirportCode, Valid: true}
		row.ReturnFromName = sql.NullString{String: ret.Departure.AirportName, Valid: true}
		row.ReturnTime = sql.NullTime{Time: ret.Departure.Time, Valid: true}
		row.ReturnToCode = sql.NullString{String: ret.Arrival.AirportCode, Valid: true}
		row.ReturnToName = sql.NullString{String: ret.Arrival.AirportName, Valid: true}
		row.ReturnArrivalTime = sql.NullTime{Time: ret.Arrival.Time, Valid: true}
	}
	return row
}

// insertArgs follows the order of bookingColumns.
func (r bookingRow) insertArgs() []any {
	return []any{
		r.BookingCode, r.FullName, r.Gender, r.DateOfBirth, r.IDNumber,
		r.Phone, r.Email, r.TripType, r.TotalAmount, r.BookingDate, r.IsPaid,
		r.DepartureFlightID, r.DepartureFlightCode, r.DepartureAirline,
		r.DeparturePrice, r.DepartureDuration, r.DepartureFromCode,
		r.DepartureFromName, r.DepartureTime, r.DepartureToCode,
		r.DepartureToName, r.DepartureArrivalTime,
		r.ReturnFlightID, r.ReturnFlightCode, r.ReturnAirline,
		r.ReturnPrice, r.ReturnDuration, r.ReturnFromCode,
		r.ReturnFromName, r.ReturnTime, r.ReturnToCode,
		r.ReturnToName, r.ReturnArrivalTime,
		r.AdultCount, r.ChildCount, r.InfantCount,
		r.AdultPrice, r.ChildPrice, r.InfantPrice,
	}
}

func (r bookingRow) toDomain() domain.Booking {
	b := domain.Booking{
		ID:   r.ID,
		Code: r.BookingCode,
		Personal: domain.PersonalInfo{
			FullName:    r.FullName,
			Gender:      r.Gender,
			DateOfBirth: r.DateOfBirth,
			IDNumber:    r.IDNumber,
			Phone:       r.Phone,
			Email:       r.Email,
		},
		TripType: domain.TripType(r.TripType),
		Departure: domain.FlightSnapshot{
			FlightID:   r.DepartureFlightID,
			FlightCode: r.DepartureFlightCode,
			Airline:    r.DepartureAirline,
			Price:      r.DeparturePrice,
			Duration:   r.DepartureDuration,
			Departure: domain.Endpoint{
				AirportCode: r.DepartureFromCode,
				AirportName: r.DepartureFromName,
				Time:        r.DepartureTime,
			},
			Arrival: domain.Endpoint{
				AirportCode: r.DepartureToCode,
				AirportName: r.DepartureToName,
				Time:        r.DepartureArrivalTime,
			},
		},
		Passengers: domain.Passengers{
			Adults:   r.AdultCount,
			Children: r.ChildCount,
			Infants:  r.InfantCount,
		},
		Prices: domain.Prices{
			Adult:  r.AdultPrice,
			Child:  r.ChildPrice,
			Infant: r.InfantPrice,
		},
		TotalAmount: r.TotalAmount,
		BookingDate: r.BookingDate,
		IsPaid:      r.IsPaid,
	}

	if r.ReturnFlightCode.Valid {
		b.Return = &domain.FlightSnapshot{
			FlightID:   r.ReturnFlightID.Int64,
			FlightCode: r.ReturnFlightCode.String,
			Airline:    r.ReturnAirline.String,
			Price:      r.ReturnPrice.Float64,
			Duration:   int(r.ReturnDuration.Int32),
			Departure: domain.Endpoint{
				AirportCode: r.ReturnFromCode.String,
				AirportName: r.ReturnFromName.String,
				Time:        r.ReturnTime.Time,
			},
			Arrival: domain.Endpoint{
				AirportCode: r.ReturnToCode.String,
				AirportName: r.ReturnToName.String,
				Time:        r.ReturnArrivalTime.Time,
			},
		}
	}
	return b
}

var _ BookingRepository = (*PGBookingRepository)(nil)
