package libday

import "time"

// Entry types.
const (
	// TypeNote is a freeform text entry.
	TypeNote = "note"
	// TypeChecklist is an entry whose content is a serialized item sequence.
	TypeChecklist = "checklist"
)

// Mood tags.
const (
	MoodHappy   = "happy"
	MoodSad     = "sad"
	MoodNeutral = "neutral"
	MoodExcited = "excited"
	MoodAnxious = "anxious"
)

var moods = map[string]bool{
	MoodHappy:   true,
	MoodSad:     true,
	MoodNeutral: true,
	MoodExcited: true,
	MoodAnxious: true,
}

// ValidType returns true if t is a supported entry type.
func ValidType(t string) bool {
	return t == TypeNote || t == TypeChecklist
}

// ValidMood returns true if m belongs to the supported mood tags.
// The empty string is not a mood, it stands for "unset".
func ValidMood(m string) bool {
	return moods[m]
}

// An Entry is a journal record as rendered by the daybook server.
type Entry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// A CreateEntry holds the parameters of an entry creation.
type CreateEntry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood,omitempty"`
	Type    string `json:"type,omitempty"`
}

// An EntryPatch is a sparse update. Only non-nil fields are sent so the
// server leaves the others untouched.
type EntryPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Mood    *string `json:"mood,omitempty"`
	Type    *string `json:"type,omitempty"`
}

// String returns a pointer suitable for EntryPatch fields.
func String(s string) *string {
	return &s
}
