package model

// A User represents a database record.
// There is no JSON tags, rendering is handled by the serializer package.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Email    string `msgpack:"email" storm:"unique"`
	Password string `msgpack:"password,omitempty"`

	// Unix timestamp of the last password change, used to revoke sessions.
	PasswordUpdatedAt int64 `msgpack:"password_updated_at"`
}
