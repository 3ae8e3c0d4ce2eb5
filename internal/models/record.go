package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedRecord означает, что запись невозможно разобрать или она
// не соответствует своей коллекции.
var ErrMalformedRecord = errors.New("malformed record")

// Record описывает минимальный набор возможностей записи, которую можно
// синхронизировать: уникальный в рамках коллекции ID и изменяемое время
// последней модификации.
type Record interface {
	GetID() string
	GetLastModified() int64
	SetLastModified(ts int64)
}

// Entry представляет запись в виде, общем для локального хранилища,
// удаленного хранилища и буферов синхронизации.
// Payload содержит JSON сериализованную запись целиком (без слияния по полям).
type Entry struct {
	Collection   string          `json:"collection"`    // Collection имя коллекции ("currencies", "upgrades")
	ID           string          `json:"id"`            // ID уникальный идентификатор в рамках коллекции
	Payload      json.RawMessage `json:"payload"`       // Payload сериализованная запись
	LastModified int64           `json:"last_modified"` // LastModified unix seconds с поправкой на смещение часов
}

// NewEntry сериализует запись в Entry.
// LastModified должен быть проставлен до вызова.
func NewEntry(collection string, rec Record) (*Entry, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal %s/%s: %v", ErrMalformedRecord, collection, rec.GetID(), err)
	}

	entry := &Entry{
		Collection:   collection,
		ID:           rec.GetID(),
		Payload:      payload,
		LastModified: rec.GetLastModified(),
	}

	if err := entry.Validate(collection); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate проверяет, что запись принадлежит коллекции и ее payload разбирается.
func (e *Entry) Validate(collection string) error {
	if e == nil {
		return fmt.Errorf("%w: nil entry", ErrMalformedRecord)
	}
	if e.ID == "" {
		return fmt.Errorf("%w: empty id in %s", ErrMalformedRecord, collection)
	}
	if e.Collection != collection {
		return fmt.Errorf("%w: %s belongs to %q, expected %q", ErrMalformedRecord, e.ID, e.Collection, collection)
	}
	if !json.Valid(e.Payload) {
		return fmt.Errorf("%w: invalid payload for %s/%s", ErrMalformedRecord, collection, e.ID)
	}
	return nil
}

// Decode разбирает payload в переданную запись и сверяет ID.
// LastModified берется из Entry, так как он является источником истины для LWW.
func (e *Entry) Decode(rec Record) error {
	if err := json.Unmarshal(e.Payload, rec); err != nil {
		return fmt.Errorf("%w: failed to unmarshal %s/%s: %v", ErrMalformedRecord, e.Collection, e.ID, err)
	}
	if rec.GetID() != e.ID {
		return fmt.Errorf("%w: payload id %q does not match %q", ErrMalformedRecord, rec.GetID(), e.ID)
	}
	rec.SetLastModified(e.LastModified)
	return nil
}

// Key возвращает составной ключ (collection, id).
func (e *Entry) Key() Key {
	return Key{Collection: e.Collection, ID: e.ID}
}

// Clone создает глубокую копию записи
func (e *Entry) Clone() *Entry {
	payload := make(json.RawMessage, len(e.Payload))
	copy(payload, e.Payload)

	return &Entry{
		Collection:   e.Collection,
		ID:           e.ID,
		Payload:      payload,
		LastModified: e.LastModified,
	}
}

// Key составной ключ записи в буферах синхронизации.
type Key struct {
	Collection string
	ID         string
}

// String возвращает ключ в формате collection/id
func (k Key) String() string {
	return k.Collection + "/" + k.ID
}
