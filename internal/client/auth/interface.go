package auth

import (
	"context"

	"github.com/iudanet/progresskeeper/pkg/api"
)

//go:generate moq -out client_mock.go . Client

// Client defines the server calls needed to maintain an anonymous device session
type Client interface {
	// SignInAnonymous создает пользователя или выполняет повторный вход устройства
	SignInAnonymous(ctx context.Context, req api.SignInRequest) (*api.SignInResponse, error)

	// SetAccessToken устанавливает токен для последующих запросов
	SetAccessToken(token string)
}
