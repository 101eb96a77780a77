package domain

import (
	"errors"
)

var (
	MessageSuccessLogin   = "session created successfully"
	MessageSuccessGetMe   = "user retrieved successfully"
	MessageFailedLogin    = "failed to create session"
	MessageFailedGetMe    = "failed to retrieve user"
	MessageFailedInitData = "failed to verify init data"

	ErrInitDataInvalid = errors.New("init data signature invalid")
	ErrInitDataExpired = errors.New("init data expired")
	ErrUserNotFound    = errors.New("user not found")
)

type (
	TelegramLoginRequest struct {
		InitData string `json:"init_data" validate:"required"`
	}

	TelegramLoginResponse struct {
		Token          string `json:"token"`
		TelegramUserID int64  `json:"telegram_user_id"`
		Username       string `json:"username"`
	}

	MeResponse struct {
		ID             string `json:"id"`
		TelegramUserID int64  `json:"telegram_user_id"`
		Username       string `json:"username"`
		PhotoURL       string `json:"photo_url,omitempty"`
	}
)
