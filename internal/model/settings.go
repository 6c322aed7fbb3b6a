package model

// Density enum constants
const (
	DensityCozy    = "COZY"
	DensityCompact = "COMPACT"
)

// NotificationSettings are the nested notification flags.
type NotificationSettings struct {
	Email             bool `json:"email"`
	Push              bool `json:"push"`
	ApprovalReminders bool `json:"approval_reminders"`
	StatusUpdates     bool `json:"status_updates"`
}

// Settings is the single application settings record. The schema is closed:
// only these fields exist and every one of them has a default.
type Settings struct {
	Theme            string               `json:"theme"`
	Density          string               `json:"density"`
	DefaultView      string               `json:"default_view"`
	ItemsPerPage     int                  `json:"items_per_page"`
	Notifications    NotificationSettings `json:"notifications"`
	DefaultCurrency  string               `json:"default_currency"`
	DefaultLanguage  string               `json:"default_language"`
	AutosaveInterval int                  `json:"autosave_interval"`
	SessionTimeout   int                  `json:"session_timeout"`
}

// DefaultSettings returns the hard-coded defaults. Loading merges stored
// overrides onto a fresh copy of this record, so stored data can never remove
// a default key.
func DefaultSettings() Settings {
	return Settings{
		Theme:        "horizon",
		Density:      DensityCozy,
		DefaultView:  "dashboard",
		ItemsPerPage: 10,
		Notifications: NotificationSettings{
			Email:             true,
			Push:              false,
			ApprovalReminders: true,
			StatusUpdates:     true,
		},
		DefaultCurrency:  "USD",
		DefaultLanguage:  "EN",
		AutosaveInterval: 5,
		SessionTimeout:   30,
	}
}
