// Package crypto генерирует и проверяет секреты устройств.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// DeviceSecretSize размер секрета устройства в байтах
const DeviceSecretSize = 32

// ErrInvalidDeviceSecret секрет не соответствует сохраненному хешу
var ErrInvalidDeviceSecret = errors.New("invalid device secret")

// GenerateDeviceSecret создает случайный секрет устройства (base64 URL)
func GenerateDeviceSecret() (string, error) {
	secretBytes := make([]byte, DeviceSecretSize)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("failed to generate device secret: %w", err)
	}

	return base64.URLEncoding.EncodeToString(secretBytes), nil
}

// HashDeviceSecret возвращает SHA256 хеш секрета (hex). Сервер хранит только хеш.
func HashDeviceSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifyDeviceSecret сравнивает секрет с сохраненным хешем за постоянное время
func VerifyDeviceSecret(secret, hashedSecret string) error {
	if secret == "" {
		return fmt.Errorf("device secret cannot be empty")
	}
	if hashedSecret == "" {
		return fmt.Errorf("hashed device secret cannot be empty")
	}

	computed := HashDeviceSecret(secret)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(hashedSecret)) != 1 {
		return ErrInvalidDeviceSecret
	}

	return nil
}
