package model

// Settings are the per-user preferences of the journal UI and widgets.
type Settings struct {
	Theme           string       `json:"theme"`
	PrimaryColor    string       `json:"primaryColor"`
	FontFamily      string       `json:"fontFamily"`
	FontSize        int          `json:"fontSize"`
	Language        string       `json:"language"`
	ShowPrayerTimes bool         `json:"showPrayerTimes"`
	ShowWeather     bool         `json:"showWeather"`
	ShowHijriDate   bool         `json:"showHijriDate"`
	Location        *Coordinates `json:"location,omitempty"`
	GeminiAPIKey    string       `json:"geminiApiKey,omitempty"`
	AutoBackup      bool         `json:"autoBackup"`
	BackupInterval  string       `json:"backupInterval"`
}

// DefaultSettings returns the settings of a fresh account.
func DefaultSettings() Settings {
	return Settings{
		Theme:           "light",
		PrimaryColor:    "#8b5cf6",
		FontFamily:      "Cairo",
		FontSize:        16,
		Language:        "ar",
		ShowPrayerTimes: true,
		ShowWeather:     true,
		ShowHijriDate:   true,
		AutoBackup:      false,
		BackupInterval:  "weekly",
	}
}

var (
	themes          = map[string]bool{"light": true, "dark": true, "system": true}
	languages       = map[string]bool{"ar": true, "en": true}
	backupIntervals = map[string]bool{"daily": true, "weekly": true, "monthly": true}
)

// Problem returns the name of the first field holding an unsupported value,
// or "" when s is acceptable.
func (s Settings) Problem() string {
	switch {
	case !themes[s.Theme]:
		return "theme"
	case !languages[s.Language]:
		return "language"
	case !backupIntervals[s.BackupInterval]:
		return "backupInterval"
	case s.FontSize < 10 || s.FontSize > 32:
		return "fontSize"
	}
	return ""
}
