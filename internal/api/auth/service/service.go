package authService

import (
	"ChiTieuBackend/internal/api/auth"
	authRepository "ChiTieuBackend/internal/api/auth/repository"
	"ChiTieuBackend/internal/entity"
	"ChiTieuBackend/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAuthService interface {
	RegisterDevice(ctx context.Context, req auth.RegisterDeviceRequest) (auth.RegisterDeviceResponse, error)
	GetProfile(ctx context.Context, userID string) (entity.User, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository
	utils          utils.IUtils
}

func New(log *logrus.Logger, ar authRepository.Repository, utils utils.IUtils) IAuthService {
	return &authService{
		log:            log,
		authRepository: ar,
		utils:          utils,
	}
}
