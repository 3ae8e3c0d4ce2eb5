package models

// Имена коллекций прогресса игрока
const (
	CollectionCurrencies = "currencies"
	CollectionUpgrades   = "upgrades"
)

// Типы валют, которые создаются с нулевым балансом при первом запуске
const (
	CurrencyGold = "gold"
	CurrencyWood = "wood"
)

// DefaultCurrencies список валют по умолчанию
var DefaultCurrencies = []string{CurrencyGold, CurrencyWood}

// CurrencySaveData представляет баланс одной валюты игрока.
type CurrencySaveData struct {
	ID           string  `json:"id"`           // ID совпадает с типом валюты
	Type         string  `json:"type"`         // Type тип валюты ("gold", "wood")
	Amount       float64 `json:"amount"`       // Amount текущий баланс
	LastModified int64   `json:"lastModified"` // LastModified время последнего изменения (unix seconds)
}

// GetID returns currency id
func (c *CurrencySaveData) GetID() string { return c.ID }

// GetLastModified returns last modification time
func (c *CurrencySaveData) GetLastModified() int64 { return c.LastModified }

// SetLastModified sets last modification time
func (c *CurrencySaveData) SetLastModified(ts int64) { c.LastModified = ts }

// UpgradeSaveData представляет уровень одного улучшения.
type UpgradeSaveData struct {
	ID           string `json:"id"`           // ID идентификатор улучшения
	Level        int    `json:"level"`        // Level текущий уровень
	LastModified int64  `json:"lastModified"` // LastModified время последнего изменения (unix seconds)
}

// GetID returns upgrade id
func (u *UpgradeSaveData) GetID() string { return u.ID }

// GetLastModified returns last modification time
func (u *UpgradeSaveData) GetLastModified() int64 { return u.LastModified }

// SetLastModified sets last modification time
func (u *UpgradeSaveData) SetLastModified(ts int64) { u.LastModified = ts }
