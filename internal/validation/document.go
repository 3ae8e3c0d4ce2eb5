package validation

import (
	"fmt"
	"regexp"
)

// CollectionPattern определяет допустимый формат имени коллекции
// Только строчные латинские буквы, цифры и нижнее подчеркивание, начинается с буквы
var CollectionPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// DocumentIDPattern определяет допустимый формат ID документа
// Латинские буквы, цифры, нижнее подчеркивание, дефис и точка
var DocumentIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

const (
	// MaxCollectionLen максимальная длина имени коллекции
	MaxCollectionLen = 64
	// MaxDocumentIDLen максимальная длина ID документа
	MaxDocumentIDLen = 128
	// MaxPayloadSize максимальный размер payload документа в байтах
	MaxPayloadSize = 64 * 1024
)

// ValidateCollection проверяет имя коллекции
func ValidateCollection(collection string) error {
	if collection == "" {
		return fmt.Errorf("collection cannot be empty")
	}

	if len(collection) > MaxCollectionLen {
		return fmt.Errorf("collection must not exceed %d characters", MaxCollectionLen)
	}

	if !CollectionPattern.MatchString(collection) {
		return fmt.Errorf("collection %q can only contain lowercase letters (a-z), numbers (0-9), and underscores (_)", collection)
	}

	return nil
}

// ValidateDocumentID проверяет ID документа
func ValidateDocumentID(id string) error {
	if id == "" {
		return fmt.Errorf("document id cannot be empty")
	}

	if len(id) > MaxDocumentIDLen {
		return fmt.Errorf("document id must not exceed %d characters", MaxDocumentIDLen)
	}

	// "." и ".." не допускаются, как в путях документов
	if id == "." || id == ".." {
		return fmt.Errorf("document id %q is reserved", id)
	}

	if !DocumentIDPattern.MatchString(id) {
		return fmt.Errorf("document id %q can only contain letters, numbers, '_', '-' and '.'", id)
	}

	return nil
}

// ValidatePayloadSize проверяет размер payload документа
func ValidatePayloadSize(size int) error {
	if size == 0 {
		return fmt.Errorf("payload cannot be empty")
	}

	if size > MaxPayloadSize {
		return fmt.Errorf("payload must not exceed %d bytes", MaxPayloadSize)
	}

	return nil
}
