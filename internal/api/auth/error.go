package auth

import "ChiTieuBackend/pkg/response"

var (
	ErrUserNotFound  = response.NewError(404, "user not found")
	ErrDeviceTaken   = response.NewError(409, "device already registered")
	ErrInvalidDevice = response.NewError(400, "invalid device data")
)
