package user

import (
	"PantryPal-Backend/domain"
	"PantryPal-Backend/entities"
	"PantryPal-Backend/pkg/jwt"
	"PantryPal-Backend/pkg/telegram"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		LoginWithTelegram(ctx context.Context, req domain.TelegramLoginRequest) (domain.TelegramLoginResponse, error)
		Me(ctx context.Context, userID string) (domain.MeResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		verifier       telegram.Verifier
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, verifier telegram.Verifier) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		verifier:       verifier,
	}
}

// LoginWithTelegram verifies the mini-app init data and exchanges it for a
// session token, creating the user on first sight.
func (s *userService) LoginWithTelegram(ctx context.Context, req domain.TelegramLoginRequest) (domain.TelegramLoginResponse, error) {
	initData, err := s.verifier.Verify(req.InitData)
	if err != nil {
		return domain.TelegramLoginResponse{}, err
	}

	user, err := s.userRepository.GetUserByTelegramID(ctx, initData.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TelegramLoginResponse{}, err
		}
		user = &entities.User{
			ID:             uuid.New(),
			TelegramUserID: initData.UserID,
			Username:       initData.Username,
			PhotoURL:       initData.PhotoURL,
		}
		if err := s.userRepository.CreateUser(ctx, user); err != nil {
			return domain.TelegramLoginResponse{}, err
		}
	} else if user.Username != initData.Username || user.PhotoURL != initData.PhotoURL {
		user.Username = initData.Username
		user.PhotoURL = initData.PhotoURL
		if err := s.userRepository.UpdateUser(ctx, user); err != nil {
			return domain.TelegramLoginResponse{}, err
		}
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.TelegramUserID)

	return domain.TelegramLoginResponse{
		Token:          token,
		TelegramUserID: user.TelegramUserID,
		Username:       user.Username,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.MeResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MeResponse{}, domain.ErrUserNotFound
		}
		return domain.MeResponse{}, err
	}

	return domain.MeResponse{
		ID:             user.ID.String(),
		TelegramUserID: user.TelegramUserID,
		Username:       user.Username,
		PhotoURL:       user.PhotoURL,
	}, nil
}
