package prefs

// DigestFrequency controls how often digest summaries would be assembled.
// Digest settings are advisory state in this engine: they are stored and
// served but no digest scheduler consumes them here.
type DigestFrequency string

const (
	DigestHourly DigestFrequency = "hourly"
	DigestDaily  DigestFrequency = "daily"
	DigestWeekly DigestFrequency = "weekly"
)

// Digest holds a user's digest settings.
type Digest struct {
	Frequency DigestFrequency `json:"frequency"`
	Channels  []string        `json:"channels"`
}

// DND holds a user's do-not-disturb settings. The engine stores and serves
// this flag but does not enforce it; see ChannelsFor for the extension
// point where suppression would apply.
type DND struct {
	Enabled bool `json:"enabled"`
}

// UserPreference is the per-user notification configuration blob.
// Channels maps module -> event type -> ordered channel names; an entry
// there overrides the priority default matrix completely.
//
// Writes are full replacement, last write wins. There is no merge path.
type UserPreference struct {
	UserID   string                         `json:"userId"`
	Channels map[string]map[string][]string `json:"preferences"`
	Digest   Digest                         `json:"digest"`
	DND      DND                            `json:"dnd"`
}

// DefaultPreference builds the read-time default served when no stored
// record exists for the user. It is constructed fresh on every call and
// never persisted automatically.
func DefaultPreference(userID string) UserPreference {
	return UserPreference{
		UserID:   userID,
		Channels: map[string]map[string][]string{},
		Digest: Digest{
			Frequency: DigestDaily,
			Channels:  []string{"email"},
		},
		DND: DND{Enabled: false},
	}
}

// Override returns the user's explicit channel list for a module/type pair,
// or false when none is configured.
func (p UserPreference) Override(module, eventType string) ([]string, bool) {
	byType, ok := p.Channels[module]
	if !ok {
		return nil, false
	}
	channels, ok := byType[eventType]
	if !ok || len(channels) == 0 {
		return nil, false
	}
	return channels, true
}
