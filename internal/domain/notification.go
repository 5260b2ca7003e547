package domain

type BankConfig struct {
	Name    string `json:"name"`
	Account string `json:"account"`
	Branch  string `json:"branch"`
}

type BookingConfirmation struct {
	To          string          `json:"to"`
	Name        string          `json:"name"`
	BookingCode string          `json:"booking_code"`
	Bank        BankConfig      `json:"bank"`
	Amount      float64         `json:"amount"`
	Departure   FlightSnapshot  `json:"departure"`
	Passengers  Passengers      `json:"passengers"`
	Return      *FlightSnapshot `json:"return,omitempty"`
}

type PaymentConfirmation struct {
	To          string  `json:"to"`
	Name        string  `json:"name"`
	BookingCode string  `json:"booking_code"`
	Amount      float64 `json:"amount"`
}
