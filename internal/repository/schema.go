package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// InitialiseDB creates the tables used by the booking back office.
// Flight ids in booking_history are kept for traceability only and carry no
// foreign key: the snapshot columns stay valid after the catalog row is gone.
func InitialiseDB(ctx context.Context, db *sqlx.DB) error {
	statements := []struct {
		name string
		sql  string
	}{
		{"flights", createFlightsTable},
		{"pricing_rules", createPricingRulesTable},
		{"system_configs", createSystemConfigsTable},
		{"booking_history", createBookingHistoryTable},
		{"booking_history index", createBookingDateIndex},
	}

	for _, st := range statements {
		if _, err := db.ExecContext(ctx, st.sql); err != nil {
			return fmt.Errorf("creating %s: %w", st.name, err)
		}
	}
	return nil
}

const createFlightsTable = `CREATE TABLE IF NOT EXISTS flights (
	id BIGSERIAL PRIMARY KEY,
	flight_code TEXT NOT NULL,
	airline TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	duration INTEGER NOT NULL,
	departure_airport_code TEXT NOT NULL,
	departure_airport_name TEXT NOT NULL,
	departure_time TIMESTAMPTZ NOT NULL,
	arrival_airport_code TEXT NOT NULL,
	arrival_airport_name TEXT NOT NULL,
	arrival_time TIMESTAMPTZ NOT NULL
)`

const createPricingRulesTable = `CREATE TABLE IF NOT EXISTS pricing_rules (
	passenger_type TEXT PRIMARY KEY,
	price_multiplier DOUBLE PRECISION NOT NULL CHECK (price_multiplier > 0),
	description TEXT
)`

const createSystemConfigsTable = `CREATE TABLE IF NOT EXISTS system_configs (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

const createBookingHistoryTable = `CREATE TABLE IF NOT EXISTS booking_history (
	id BIGSERIAL PRIMARY KEY,
	booking_code TEXT NOT NULL,
	full_name TEXT NOT NULL,
	gender TEXT NOT NULL,
	date_of_birth TEXT NOT NULL,
	id_number TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL,
	trip_type TEXT NOT NULL CHECK (trip_type IN ('one-way', 'round-trip')),
	total_amount DOUBLE PRECISION NOT NULL,
	booking_date TIMESTAMPTZ NOT NULL,
	is_paid BOOLEAN NOT NULL DEFAULT FALSE,

	departure_flight_id BIGINT NOT NULL,
	departure_flight_code TEXT NOT NULL,
	departure_airline TEXT NOT NULL,
	departure_price DOUBLE PRECISION NOT NULL,
	departure_duration INTEGER NOT NULL,
	departure_from_code TEXT NOT NULL,
	departure_from_name TEXT NOT NULL,
	departure_time TIMESTAMPTZ NOT NULL,
	departure_to_code TEXT NOT NULL,
	departure_to_name TEXT NOT NULL,
	departure_arrival_time TIMESTAMPTZ NOT NULL,

	return_flight_id BIGINT,
	return_flight_code TEXT,
	return_airline TEXT,
	return_price DOUBLE PRECISION,
	return_duration INTEGER,
	return_from_code TEXT,
	return_from_name TEXT,
	return_time TIMESTAMPTZ,
	return_to_code TEXT,
	return_to_name TEXT,
	return_arrival_time TIMESTAMPTZ,

	adult_count INTEGER NOT NULL DEFAULT 0,
	child_count INTEGER NOT NULL DEFAULT 0,
	infant_count INTEGER NOT NULL DEFAULT 0,
	adult_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	child_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	infant_price DOUBLE PRECISION NOT NULL DEFAULT 0,

	CONSTRAINT booking_history_booking_code_key UNIQUE (booking_code),
	CONSTRAINT booking_history_return_leg CHECK (
		(trip_type = 'one-way' AND return_flight_code IS NULL AND return_from_code IS NULL AND return_to_code IS NULL)
		OR (trip_type = 'round-trip' AND return_flight_code IS NOT NULL AND return_from_code IS NOT NULL AND return_to_code IS NOT NULL)
	)
)`

const createBookingDateIndex = `CREATE INDEX IF NOT EXISTS booking_history_booking_date_idx ON booking_history (booking_date DESC)`
