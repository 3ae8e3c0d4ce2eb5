package crdt

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ServerClock источник авторитетного времени (unix seconds).
type ServerClock interface {
	GetServerTime(ctx context.Context) (int64, error)
}

// SkewClock представляет локальные часы с поправкой на смещение относительно сервера.
// Все timestamp записей берутся из Now(), поэтому клиенты с неверными системными
// часами все равно получают значения, сравнимые с серверными.
type SkewClock struct {
	now    func() time.Time // источник локального времени
	offset int64            // смещение serverTime - localTime в секундах
	mu     sync.RWMutex     // мьютекс для потокобезопасности
}

// NewSkewClock создает часы с нулевым смещением.
func NewSkewClock() *SkewClock {
	return &SkewClock{now: time.Now}
}

// NewSkewClockWithOffset создает часы с заданным смещением.
// Используется для тестирования или восстановления состояния.
func NewSkewClockWithOffset(offset int64) *SkewClock {
	return &SkewClock{now: time.Now, offset: offset}
}

// Now возвращает текущее локальное время в unix seconds плюс смещение.
func (c *SkewClock) Now() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.now().Unix() + c.offset
}

// Offset возвращает текущее смещение.
func (c *SkewClock) Offset() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.offset
}

// SetOffset устанавливает смещение.
func (c *SkewClock) SetOffset(offset int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.offset = offset
}

// Calibrate оценивает смещение по серверу и применяет его.
// Возвращает примененное смещение (0, если сервер недоступен).
func (c *SkewClock) Calibrate(ctx context.Context, server ServerClock, logger *slog.Logger) int64 {
	c.mu.RLock()
	now := c.now
	c.mu.RUnlock()

	offset := EstimateOffset(ctx, server, now, logger)
	c.SetOffset(offset)

	return offset
}

// EstimateOffset выполняет одну оценку смещения часов за сессию:
// offset = serverTime - localTimeAtRequest.
// При ошибке (нет сети, сервер недоступен) возвращает 0 и пишет предупреждение.
func EstimateOffset(ctx context.Context, server ServerClock, now func() time.Time, logger *slog.Logger) int64 {
	if now == nil {
		now = time.Now
	}

	// Фиксируем локальное время до запроса
	localTime := now().Unix()

	serverTime, err := server.GetServerTime(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("Failed to estimate clock offset, using local time", "error", err)
		}
		return 0
	}

	offset := serverTime - localTime
	if logger != nil {
		logger.Info("Clock offset estimated", "offset_seconds", offset)
	}

	return offset
}
