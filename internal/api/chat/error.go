package chat

import "ChiTieuBackend/pkg/response"

var (
	ErrInvalidMode  = response.NewError(400, "unknown chat mode")
	ErrEmptyMessage = response.NewError(400, "message is empty")
)
