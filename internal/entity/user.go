package entity

import "time"

// User is one installed app instance. The Android client registers its
// device id once and receives a token; there is no password flow.
type User struct {
	ID         string    `db:"id"`
	DeviceID   string    `db:"device_id"`
	DeviceName string    `db:"device_name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// UserLoginData is what the token middleware stashes on the request context
// after verifying the bearer token.
type UserLoginData struct {
	ID       string
	DeviceID string
}
