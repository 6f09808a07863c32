package domain

// ReportStatus CEEB processing state of a submitted report.
type ReportStatus string

const (
	ReportAccepted ReportStatus = "accepted"
	ReportPending  ReportStatus = "pending"
)

// ReportBuilding address summary of a building included in a report.
type ReportBuilding struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

// CeebReport a batch of inspections submitted to CEEB.
type CeebReport struct {
	ID              int              `json:"id"`
	SubmissionDate  string           `json:"submission_date"`
	InspectionCount int              `json:"inspection_count"`
	Status          ReportStatus     `json:"status"`
	SubmittedBy     string           `json:"submitted_by"`
	Buildings       []ReportBuilding `json:"buildings"`
}
