package api

// SignInRequest представляет запрос анонимного входа.
// Пустой запрос создает нового пользователя; с user_id и device_secret
// выполняется повторный вход существующего устройства.
type SignInRequest struct {
	UserID       string `json:"user_id,omitempty"`       // UUID пользователя
	DeviceSecret string `json:"device_secret,omitempty"` // секрет устройства, выданный при первом входе
}

// SignInResponse представляет ответ на успешный вход
type SignInResponse struct {
	UserID       string `json:"user_id"`       // UUID пользователя
	DeviceSecret string `json:"device_secret,omitempty"` // секрет устройства, только при создании пользователя
	AccessToken  string `json:"access_token"`  // JWT access token
	ExpiresIn    int64  `json:"expires_in"`    // время жизни access token в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
