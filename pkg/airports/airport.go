package airports

// Airport is one validated, canonical airport. It is immutable once produced
// by validation. Field order here is the serialization order.
type Airport struct {
	Name                string  `json:"name" yaml:"name"`
	City                string  `json:"city" yaml:"city"`
	State               *string `json:"state" yaml:"state"`
	Country             string  `json:"country" yaml:"country"`
	CountryName         string  `json:"countryName,omitempty" yaml:"countryName,omitempty"`
	IATA                string  `json:"iata" yaml:"iata"`
	ICAO                string  `json:"icao" yaml:"icao"`
	Latitude            float64 `json:"latitude" yaml:"latitude"`
	Longitude           float64 `json:"longitude" yaml:"longitude"`
	Timezone            string  `json:"timezone" yaml:"timezone"`
	HasScheduledService bool    `json:"hasScheduledService" yaml:"hasScheduledService"`
}

// List is an ordered set of airports, in first-IATA-insertion order.
type List []Airport

// Len returns the number of airports.
func (l List) Len() int {
	return len(l)
}

// Find returns the first airport with the given IATA code.
func (l List) Find(iata string) (Airport, bool) {
	for _, a := range l {
		if a.IATA == iata {
			return a, true
		}
	}
	return Airport{}, false
}
