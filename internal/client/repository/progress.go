package repository

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/iudanet/progresskeeper/internal/client/storage"
	"github.com/iudanet/progresskeeper/internal/models"
)

// Currencies репозиторий балансов валют.
type Currencies struct {
	*Repository[*models.CurrencySaveData]
}

// NewCurrencies создает репозиторий валют.
func NewCurrencies(local storage.RecordStorage, registrar Registrar, logger *slog.Logger) *Currencies {
	return &Currencies{
		Repository: New(models.CollectionCurrencies, local, registrar,
			func() *models.CurrencySaveData { return &models.CurrencySaveData{} }, logger),
	}
}

// Initialize загружает валюты и создает отсутствующие валюты по умолчанию с нулевым балансом.
func (c *Currencies) Initialize(ctx context.Context) error {
	if err := c.Repository.Initialize(ctx); err != nil {
		return err
	}

	for _, currency := range models.DefaultCurrencies {
		if _, ok := c.Get(currency); ok {
			continue
		}
		c.Save(&models.CurrencySaveData{ID: currency, Type: currency})
	}

	return nil
}

// Balance возвращает баланс валюты (0, если валюты нет).
func (c *Currencies) Balance(currency string) float64 {
	item, ok := c.Get(currency)
	if !ok {
		return 0
	}
	return item.Amount
}

// Add изменяет баланс валюты на delta и возвращает новый баланс.
// Баланс не может стать отрицательным.
func (c *Currencies) Add(currency string, delta float64) (float64, error) {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return 0, fmt.Errorf("currency type is required")
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return c.Balance(currency), fmt.Errorf("amount must be a finite number, got %v", delta)
	}

	updated := models.CurrencySaveData{ID: currency, Type: currency}
	if item, ok := c.Get(currency); ok {
		updated = *item
	}

	if updated.Amount+delta < 0 {
		return updated.Amount, fmt.Errorf("insufficient %s: have %.0f, need %.0f", currency, updated.Amount, -delta)
	}
	updated.Amount += delta

	c.Save(&updated)

	return updated.Amount, nil
}

// Upgrades репозиторий уровней улучшений.
type Upgrades struct {
	*Repository[*models.UpgradeSaveData]
}

// NewUpgrades создает репозиторий улучшений.
func NewUpgrades(local storage.RecordStorage, registrar Registrar, logger *slog.Logger) *Upgrades {
	return &Upgrades{
		Repository: New(models.CollectionUpgrades, local, registrar,
			func() *models.UpgradeSaveData { return &models.UpgradeSaveData{} }, logger),
	}
}

// Level возвращает уровень улучшения (0, если улучшения нет).
func (u *Upgrades) Level(id string) int {
	item, ok := u.Get(id)
	if !ok {
		return 0
	}
	return item.Level
}

// LevelUp повышает уровень улучшения на by и возвращает новый уровень.
func (u *Upgrades) LevelUp(id string, by int) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, fmt.Errorf("upgrade id is required")
	}
	if by <= 0 {
		return 0, fmt.Errorf("level increment must be positive, got %d", by)
	}

	updated := models.UpgradeSaveData{ID: id}
	if item, ok := u.Get(id); ok {
		updated = *item
	}
	updated.Level += by

	u.Save(&updated)

	return updated.Level, nil
}
