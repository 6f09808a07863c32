package domain

// Client a customer (housing cooperative, property manager, private owner).
type Client struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ContactPerson  string `json:"contact_person"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
	Address        string `json:"address"`
	BuildingCount  int    `json:"building_count"`
	LastInspection string `json:"last_inspection"`
}
