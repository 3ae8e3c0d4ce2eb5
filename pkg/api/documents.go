package api

import "encoding/json"

// Document представляет одну запись коллекции пользователя
type Document struct {
	Collection   string          `json:"collection"`
	ID           string          `json:"id"`
	Payload      json.RawMessage `json:"payload"`
	LastModified int64           `json:"last_modified"` // unix seconds с поправкой на смещение часов
}

// BatchRequest представляет атомарный набор записей
type BatchRequest struct {
	Writes []Document `json:"writes"`
}

// BatchResponse представляет ответ на успешный коммит батча
type BatchResponse struct {
	Committed int `json:"committed"` // количество записанных документов
}

// CollectionResponse представляет все документы коллекции
type CollectionResponse struct {
	Documents []Document `json:"documents"`
}

// ServerTimeResponse представляет авторитетное время сервера
type ServerTimeResponse struct {
	ServerTime int64 `json:"server_time"` // unix seconds
}
