package serializer

import "github.com/mdouchement/daybook/internal/model"

// Session serializes the render of a session.
func Session(m *model.Session) map[string]interface{} {
	return map[string]interface{}{
		"id":         m.ID,
		"created_at": m.CreatedAt,
		"updated_at": m.UpdatedAt,
		"user_agent": m.UserAgent,
		"expire_at":  m.ExpireAt,
		"current":    m.Current,
	}
}

// Sessions serializes the render of sessions.
func Sessions(m []*model.Session) []map[string]interface{} {
	sessions := make([]map[string]interface{}, len(m))
	for i, s := range m {
		sessions[i] = Session(s)
	}
	return sessions
}
