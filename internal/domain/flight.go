package domain

import "time"

// Flight is a live catalog entry. Bookings never reference it directly,
// they copy it into a FlightSnapshot.
type Flight struct {
	ID                   int64     `json:"id"`
	FlightCode           string    `json:"flight_code"`
	Airline              string    `json:"airline"`
	Price                float64   `json:"price"`
	Duration             int       `json:"duration"`
	DepartureAirportCode string    `json:"departure_airport_code"`
	DepartureAirportName string    `json:"departure_airport_name"`
	DepartureTime        time.Time `json:"departure_time"`
	ArrivalAirportCode   string    `json:"arrival_airport_code"`
	ArrivalAirportName   string    `json:"arrival_airport_name"`
	ArrivalTime          time.Time `json:"arrival_time"`
}

func (f Flight) Snapshot() FlightSnapshot {
	return FlightSnapshot{
		FlightID:   f.ID,
		FlightCode: f.FlightCode,
		Airline:    f.Airline,
		Price:      f.Price,
		Duration:   f.Duration,
		Departure: Endpoint{
			AirportCode: f.DepartureAirportCode,
			AirportName: f.DepartureAirportName,
			Time:        f.DepartureTime,
		},
		Arrival: Endpoint{
			AirportCode: f.ArrivalAirportCode,
			AirportName: f.ArrivalAirportName,
			Time:        f.ArrivalTime,
		},
	}
}
