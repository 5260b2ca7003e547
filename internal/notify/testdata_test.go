package notify

import (
	"time"

	"github.com/Domenick1991/airticket/internal/domain"
)

func sampleLeg(code, from, to string, departure time.Time) domain.FlightSnapshot {
	return domain.FlightSnapshot{
		FlightID:   1,
		FlightCode: code,
		Airline:    "VietJet Air",
		Price:      1250000,
		Duration:   125,
		Departure:  domain.Endpoint{AirportCode: from, AirportName: from + " airport", Time: departure},
		Arrival:    domain.Endpoint{AirportCode: to, AirportName: to + " airport", Time: departure.Add(125 * time.Minute)},
	}
}

func sampleBookingConfirmation() domain.BookingConfirmation {
	return domain.BookingConfirmation{
		To:          "an@example.com",
		Name:        "Nguyen Van An",
		BookingCode: "BK123456007",
		Bank:        domain.BankConfig{Name: "Cong ty Du lich", Account: "0123456789", Branch: "VCB"},
		Amount:      2750000,
		Departure:   sampleLeg("VJ123", "SGN", "HAN", time.Date(2026, 11, 1, 23, 0, 0, 0, time.UTC)),
		Passengers:  domain.Passengers{Adults: 2, Children: 1},
	}
}

func samplePaymentConfirmation() domain.PaymentConfirmation {
	return domain.PaymentConfirmation{
		To:          "an@example.com",
		Name:        "Nguyen Van An",
		BookingCode: "BK123456007",
		Amount:      2750000,
	}
}
