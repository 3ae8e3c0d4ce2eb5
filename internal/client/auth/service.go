package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/progresskeeper/internal/client/storage"
	"github.com/iudanet/progresskeeper/pkg/api"
)

// tokenRefreshMargin токен обновляется заранее, чтобы не истечь посреди коммита
const tokenRefreshMargin = time.Minute

// Service управляет анонимной сессией устройства
type Service struct {
	client Client
	store  storage.AuthStorage
	logger *slog.Logger
	now    func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(client Client, store storage.AuthStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		client: client,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureSession возвращает действующую сессию и передает токен клиенту.
// Сохраненный непросроченный токен используется без обращения к серверу;
// иначе выполняется вход (повторный для известного устройства).
func (s *Service) EnsureSession(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.store.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		authData = nil
	case err != nil:
		return nil, fmt.Errorf("failed to load session: %w", err)
	case s.valid(authData):
		s.client.SetAccessToken(authData.AccessToken)
		return authData, nil
	}

	return s.signIn(ctx, authData)
}

// SignIn всегда запрашивает у сервера новый токен
func (s *Service) SignIn(ctx context.Context) (*storage.AuthData, error) {
	authData, err := s.store.GetAuth(ctx)
	if err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return s.signIn(ctx, authData)
}

// Session возвращает сохраненную сессию без обращения к серверу
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	return s.store.GetAuth(ctx)
}

// Logout удаляет локальную сессию. Данные пользователя на сервере сохраняются,
// но без device secret войти в ту же учетную запись больше нельзя.
func (s *Service) Logout(ctx context.Context) error {
	s.client.SetAccessToken("")

	if err := s.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}

	return nil
}

func (s *Service) signIn(ctx context.Context, existing *storage.AuthData) (*storage.AuthData, error) {
	var req api.SignInRequest
	if existing != nil {
		req.UserID = existing.UserID
		req.DeviceSecret = existing.DeviceSecret
	}

	resp, err := s.client.SignInAnonymous(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sign in failed: %w", err)
	}

	authData := &storage.AuthData{
		UserID:       resp.UserID,
		DeviceSecret: resp.DeviceSecret,
		AccessToken:  resp.AccessToken,
		ExpiresAt:    s.now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}

	// При повторном входе сервер может не возвращать секрет
	if authData.DeviceSecret == "" && existing != nil {
		authData.DeviceSecret = existing.DeviceSecret
	}

	if err := s.store.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.client.SetAccessToken(authData.AccessToken)

	if existing == nil {
		s.logger.Info("Anonymous user created", "user_id", authData.UserID)
	} else {
		s.logger.Info("Device signed in", "user_id", authData.UserID)
	}

	return authData, nil
}

func (s *Service) valid(authData *storage.AuthData) bool {
	if authData.AccessToken == "" {
		return false
	}
	return s.now().Add(tokenRefreshMargin).Before(time.Unix(authData.ExpiresAt, 0))
}
