package authService

import (
	"errors"
	"time"

	"ChiTieuBackend/internal/api/auth"
	"ChiTieuBackend/internal/entity"
	contextPkg "ChiTieuBackend/pkg/context"
	jwtPkg "ChiTieuBackend/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const accessTokenTTL = 30 * 24 * time.Hour

// RegisterDevice is the whole sign-in story: the app sends its device id and
// gets back a token. A device that already registered simply gets a fresh
// token for the same user.
func (s *authService) RegisterDevice(ctx context.Context, req auth.RegisterDeviceRequest) (auth.RegisterDeviceResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.RegisterDeviceResponse{}, err
	}

	user, err := repo.Users.GetByDeviceID(ctx, req.DeviceID)
	switch {
	case err == nil:
		if req.DeviceName != "" && req.DeviceName != user.DeviceName {
			if err := repo.Users.UpdateDeviceName(ctx, user.ID, req.DeviceName); err != nil {
				return auth.RegisterDeviceResponse{}, err
			}
		}
	case errors.Is(err, auth.ErrUserNotFound):
		id, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate user id")
			return auth.RegisterDeviceResponse{}, err
		}

		user = entity.User{
			ID:         id,
			DeviceID:   req.DeviceID,
			DeviceName: req.DeviceName,
		}
		if err := repo.Users.CreateUser(ctx, user); err != nil {
			return auth.RegisterDeviceResponse{}, err
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
		}).Info("Registered new device")
	default:
		return auth.RegisterDeviceResponse{}, err
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":        user.ID,
		"device_id": user.DeviceID,
	}, accessTokenTTL)
	if err != nil {
		return auth.RegisterDeviceResponse{}, err
	}

	return auth.RegisterDeviceResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (entity.User, error) {
	repo, err := s.authRepository.NewClient(false)
	if err != nil {
		return entity.User{}, err
	}

	return repo.Users.GetByID(ctx, userID)
}
