package model

// An Entry represents a journal record and the rendered API response.
// For checklist entries, Content holds the serialized item sequence.
type Entry struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID  string `json:"owner_id" msgpack:"user_id" storm:"index"`
	Title   string `json:"title"    msgpack:"title"`
	Content string `json:"content"  msgpack:"content"`
	Mood    string `json:"mood"     msgpack:"mood"`
	Type    string `json:"type"     msgpack:"type"    storm:"index"`
}
