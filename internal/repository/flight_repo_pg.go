package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
	"github.com/jmoiron/sqlx"
)

// FlightRepository is the read side of the flight catalog.
type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *sqlx.DB
}

func NewFlightRepository(db *sqlx.DB) *PGFlightRepository {
	return &PGFlightRepository{db: db}
}

const selectFlightSQL = `SELECT id, flight_code, airline, price, duration,
	departure_airport_code, departure_airport_name, departure_time,
	arrival_airport_code, arrival_airport_name, arrival_time
	FROM flights`

type flightRow struct {
	ID                   int64     `db:"id"`
	FlightCode           string    `db:"flight_code"`
	Airline              string    `db:"airline"`
	Price                float64   `db:"price"`
	Duration             int       `db:"duration"`
	DepartureAirportCode string    `db:"departure_airport_code"`
	DepartureAirportName string    `db:"departure_airport_name"`
	DepartureTime        time.Time `db:"departure_time"`
	ArrivalAirportCode   string    `db:"arrival_airport_code"`
	ArrivalAirportName   string    `db:"arrival_airport_name"`
	ArrivalTime          time.Time `db:"arrival_time"`
}

func (r flightRow) toDomain() domain.Flight {
	return domain.Flight{
		ID:                   r.ID,
		FlightCode:           r.FlightCode,
		Airline:              r.Airline,
		Price:                r.Price,
		Duration:             r.Duration,
		DepartureAirportCode: r.DepartureAirportCode,
		DepartureAirportName: r.DepartureAirportName,
		DepartureTime:        r.DepartureTime,
		ArrivalAirportCode:   r.ArrivalAirportCode,
		ArrivalAirportName:   r.ArrivalAirportName,
		ArrivalTime:          r.ArrivalTime,
	}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	var rows []flightRow
	if err := r.db.SelectContext(ctx, &rows, selectFlightSQL+` ORDER BY departure_time`); err != nil {
		return nil, err
	}

	flights := make([]domain.Flight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, row.toDomain())
	}
	return flights, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	var row flightRow
	if err := r.db.GetContext(ctx, &row, selectFlightSQL+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	f := row.toDomain()
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
