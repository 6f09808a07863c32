package domain

import "time"

// Settings editable company profile and dashboard preferences.
type Settings struct {
	CompanyName        string    `json:"company_name"`
	TaxID              string    `json:"tax_id"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	DefaultTechnician  string    `json:"default_technician"`
	EmailNotifications bool      `json:"email_notifications"`
	SMSNotifications   bool      `json:"sms_notifications"`
	DeadlineReminders  bool      `json:"deadline_reminders"`
	ReminderDays       int       `json:"reminder_days"`
	AutoSubmitCeeb     bool      `json:"auto_submit_ceeb"`
	Language           string    `json:"language"`
	Theme              string    `json:"theme"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultSettings is returned until something has been saved.
func DefaultSettings() Settings {
	return Settings{
		CompanyName:        "Zakład Kominiarski",
		Email:              "biuro@example.pl",
		DefaultTechnician:  "",
		EmailNotifications: true,
		DeadlineReminders:  true,
		ReminderDays:       3,
		Language:           "pl",
		Theme:              "light",
	}
}

// Submission a CEEB submission recorded by the service.
type Submission struct {
	ID              string    `json:"id"`
	SubmittedAt     time.Time `json:"submitted_at"`
	SubmittedBy     string    `json:"submitted_by"`
	InspectionIDs   []int     `json:"inspection_ids"`
	SnapshotVersion int64     `json:"snapshot_version"`
	ReportID        int       `json:"report_id"`
	ExternalRef     string    `json:"external_ref"`
}
