package models

import "time"

// User представляет анонимного пользователя (устройство) на сервере
type User struct {
	CreatedAt        time.Time  `json:"created_at"`         // время создания
	LastSeen         *time.Time `json:"last_seen"`          // время последнего входа
	ID               string     `json:"id"`                 // UUID пользователя
	DeviceSecretHash string     `json:"device_secret_hash"` // SHA256 хеш секрета устройства (hex)
}
