package serializer

import "github.com/mdouchement/daybook/internal/model"

// User serializes the render of a user.
// The password hash never leaves the server.
func User(m *model.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         m.ID,
		"email":      m.Email,
		"created_at": m.CreatedAt,
	}
}
