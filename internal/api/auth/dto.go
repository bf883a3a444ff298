package auth

type RegisterDeviceRequest struct {
	DeviceID   string `json:"device_id" validate:"required,min=8,max=128"`
	DeviceName string `json:"device_name" validate:"max=255"`
}

type RegisterDeviceResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	UserID      string `json:"user_id"`
}

type ProfileResponse struct {
	ID         string `json:"id"`
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
	CreatedAt  string `json:"created_at"`
}
