package domain

type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

var PassengerTypes = []PassengerType{PassengerAdult, PassengerChild, PassengerInfant}

func (p PassengerType) Valid() bool {
	switch p {
	case PassengerAdult, PassengerChild, PassengerInfant:
		return true
	}
	return false
}

type PricingRule struct {
	PassengerType   PassengerType `json:"passenger_type,omitempty"`
	PriceMultiplier float64       `json:"price_multiplier"`
	Description     string        `json:"description"`
}

// PricingRules is the full three-entry rule set.
type PricingRules struct {
	Adult  PricingRule `json:"adult"`
	Child  PricingRule `json:"child"`
	Infant PricingRule `json:"infant"`
}

func (r *PricingRules) Set(rule PricingRule) {
	switch rule.PassengerType {
	case PassengerAdult:
		r.Adult = rule
	case PassengerChild:
		r.Child = rule
	case PassengerInfant:
		r.Infant = rule
	}
}

func (r PricingRules) Get(t PassengerType) PricingRule {
	switch t {
	case PassengerChild:
		return r.Child
	case PassengerInfant:
		return r.Infant
	default:
		return r.Adult
	}
}
