package domain

// InspectionType chimney inspection category.
type InspectionType string

const (
	InspectionPeriodic     InspectionType = "periodic"
	InspectionAcceptance   InspectionType = "acceptance"
	InspectionIntervention InspectionType = "intervention"
	InspectionGas          InspectionType = "gas"
)

// InspectionTypes lists every category in display order.
var InspectionTypes = []InspectionType{
	InspectionPeriodic,
	InspectionAcceptance,
	InspectionIntervention,
	InspectionGas,
}

// Label returns the name shown in the admin UI.
func (t InspectionType) Label() string {
	switch t {
	case InspectionPeriodic:
		return "Kontrola okresowa"
	case InspectionAcceptance:
		return "Odbiór techniczny"
	case InspectionIntervention:
		return "Interwencja"
	case InspectionGas:
		return "Przegląd gazowy"
	default:
		return string(t)
	}
}

// InspectionResult outcome of an inspection.
type InspectionResult string

const (
	ResultPositive    InspectionResult = "positive"
	ResultNegative    InspectionResult = "negative"
	ResultConditional InspectionResult = "conditional"
)

// InspectionResults lists every outcome.
var InspectionResults = []InspectionResult{ResultPositive, ResultNegative, ResultConditional}

// CeebStatus whether an inspection has been reported to CEEB.
type CeebStatus string

const (
	CeebReported CeebStatus = "reported"
	CeebPending  CeebStatus = "pending"
)

// Inspection one chimney inspection. Address fields are copied from the building.
type Inspection struct {
	ID              int              `json:"id"`
	BuildingID      int              `json:"building_id"`
	Type            InspectionType   `json:"type"`
	Result          InspectionResult `json:"result"`
	Address         string           `json:"address"`
	City            string           `json:"city"`
	PostalCode      string           `json:"postal_code"`
	Date            string           `json:"date"` // DD.MM.YYYY
	CeebStatus      CeebStatus       `json:"ceeb_status"`
	Technician      string           `json:"technician"`
	ProtocolNumber  string           `json:"protocol_number"`
	Notes           string           `json:"notes"`
	Defects         string           `json:"defects"`
	Recommendations string           `json:"recommendations"`
}
