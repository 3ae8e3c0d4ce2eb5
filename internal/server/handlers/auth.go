package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/progresskeeper/internal/crypto"
	"github.com/iudanet/progresskeeper/internal/models"
	"github.com/iudanet/progresskeeper/internal/server/storage"
	"github.com/iudanet/progresskeeper/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	jwtConfig   JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		jwtConfig:   jwtConfig,
	}
}

// SignInAnonymous обрабатывает POST /api/v1/auth/anonymous.
// Без user_id создает нового анонимного пользователя и выдает секрет устройства;
// с user_id и device_secret выполняет повторный вход.
func (h *AuthHandler) SignInAnonymous(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Пустое тело допустимо и означает новый вход
	var req api.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.ErrorContext(ctx, "failed to decode sign in request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserID == "" {
		h.createUser(w, r)
		return
	}

	if req.DeviceSecret == "" {
		SendError(h.logger, w, "device_secret is required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "sign in failed: user not found", slog.String("user_id", req.UserID))
			SendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyDeviceSecret(req.DeviceSecret, user.DeviceSecretHash); err != nil {
		h.logger.WarnContext(ctx, "sign in failed: invalid device secret", slog.String("user_id", user.ID))
		SendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.UpdateLastSeen(ctx, user.ID, time.Now()); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last seen", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "device signed in", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.SignInResponse{
		UserID:      user.ID,
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}

func (h *AuthHandler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	secret, err := crypto.GenerateDeviceSecret()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate device secret", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:               uuid.New().String(),
		DeviceSecretHash: crypto.HashDeviceSecret(secret),
		CreatedAt:        now,
		LastSeen:         &now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "anonymous user created", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.SignInResponse{
		UserID:       user.ID,
		DeviceSecret: secret,
		AccessToken:  accessToken,
		ExpiresIn:    expiresIn,
	}, http.StatusCreated)
}
