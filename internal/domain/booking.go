package domain

import "time"

type TripType string

const (
	TripTypeOneWay    TripType = "one-way"
	TripTypeRoundTrip TripType = "round-trip"
)

func (t TripType) Valid() bool {
	return t == TripTypeOneWay || t == TripTypeRoundTrip
}

type Endpoint struct {
	AirportCode string    `json:"airport_code"`
	AirportName string    `json:"airport_name"`
	Time        time.Time `json:"time"`
}

// FlightSnapshot is the frozen copy of a flight taken when the booking is made.
type FlightSnapshot struct {
	FlightID   int64    `json:"flight_id"`
	FlightCode string   `json:"flight_code"`
	Airline    string   `json:"airline"`
	Price      float64  `json:"price"`
	Duration   int      `json:"duration"`
	Departure  Endpoint `json:"departure"`
	Arrival    Endpoint `json:"arrival"`
}

// Complete reports whether the snapshot carries both endpoints and a flight code.
func (s FlightSnapshot) Complete() bool {
	return s.FlightCode != "" &&
		s.Departure.AirportCode != "" && !s.Departure.Time.IsZero() &&
		s.Arrival.AirportCode != "" && !s.Arrival.Time.IsZero()
}

type PersonalInfo struct {
	FullName    string `json:"full_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	IDNumber    string `json:"id_number"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (p Passengers) Total() int {
	return p.Adults + p.Children + p.Infants
}

type Prices struct {
	Adult  float64 `json:"adult_price"`
	Child  float64 `json:"child_price"`
	Infant float64 `json:"infant_price"`
}

type Booking struct {
	ID          int64           `json:"id"`
	Code        string          `json:"booking_code"`
	Personal    PersonalInfo    `json:"personal_info"`
	TripType    TripType        `json:"trip_type"`
	Departure   FlightSnapshot  `json:"departure_flight"`
	Return      *FlightSnapshot `json:"return_flight,omitempty"`
	Passengers  Passengers      `json:"passengers"`
	Prices      Prices          `json:"prices"`
	TotalAmount float64         `json:"total_amount"`
	BookingDate time.Time       `json:"booking_date"`
	IsPaid      bool            `json:"is_paid"`
}

// PaymentTransition is the outcome of a payment status update.
// Found is false when no booking carries the code.
type PaymentTransition struct {
	Found    bool
	Previous bool
	Current  bool
}

// BecamePaid reports an Unpaid to Paid transition.
func (t PaymentTransition) BecamePaid() bool {
	return t.Found && !t.Previous && t.Current
}
