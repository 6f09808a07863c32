package domain

// HeatingType fuel/heating source of a building.
type HeatingType string

const (
	HeatingGas    HeatingType = "gas"
	HeatingCoal   HeatingType = "coal"
	HeatingWood   HeatingType = "wood"
	HeatingPellet HeatingType = "pellet"
	HeatingOil    HeatingType = "oil"
)

var HeatingTypes = []HeatingType{HeatingGas, HeatingCoal, HeatingWood, HeatingPellet, HeatingOil}

// Building a serviced building owned by a client.
type Building struct {
	ID             int         `json:"id"`
	Address        string      `json:"address"`
	City           string      `json:"city"`
	PostalCode     string      `json:"postal_code"`
	ClientID       int         `json:"client_id"`
	HeatingType    HeatingType `json:"heating_type"`
	YearBuilt      int         `json:"year_built"`
	Floors         int         `json:"floors"`
	Apartments     int         `json:"apartments"`
	LastInspection string      `json:"last_inspection"`
	NextInspection string      `json:"next_inspection"`
}
