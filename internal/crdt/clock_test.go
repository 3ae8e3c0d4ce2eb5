package crdt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// serverClockFunc адаптер функции к интерфейсу ServerClock
type serverClockFunc func(ctx context.Context) (int64, error)

func (f serverClockFunc) GetServerTime(ctx context.Context) (int64, error) {
	return f(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestEstimateOffset(t *testing.T) {
	tests := []struct {
		serverErr  error
		name       string
		serverTime int64
		localTime  int64
		expected   int64
	}{
		{name: "local clock behind", serverTime: 1_000_100, localTime: 1_000_000, expected: 100},
		{name: "local clock ahead", serverTime: 1_000_000, localTime: 1_000_300, expected: -300},
		{name: "clocks in sync", serverTime: 1_000_000, localTime: 1_000_000, expected: 0},
		{name: "server unavailable", serverErr: errors.New("connection refused"), localTime: 1_000_000, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serverClockFunc(func(ctx context.Context) (int64, error) {
				return tt.serverTime, tt.serverErr
			})

			offset := EstimateOffset(context.Background(), server, fixedNow(tt.localTime), discardLogger())
			assert.Equal(t, tt.expected, offset)
		})
	}
}

func TestEstimateOffset_NilNowAndLogger(t *testing.T) {
	server := serverClockFunc(func(ctx context.Context) (int64, error) {
		return time.Now().Unix() + 3600, nil
	})

	offset := EstimateOffset(context.Background(), server, nil, nil)
	assert.InDelta(t, 3600, offset, 1)
}

func TestSkewClock_Now(t *testing.T) {
	clock := NewSkewClockWithOffset(50)
	clock.now = fixedNow(1000)

	assert.Equal(t, int64(1050), clock.Now())
	assert.Equal(t, int64(50), clock.Offset())

	clock.SetOffset(-20)
	assert.Equal(t, int64(980), clock.Now())
}

func TestSkewClock_DefaultsToLocalTime(t *testing.T) {
	clock := NewSkewClock()

	assert.Equal(t, int64(0), clock.Offset())
	assert.InDelta(t, time.Now().Unix(), clock.Now(), 1)
}

func TestSkewClock_Calibrate(t *testing.T) {
	clock := NewSkewClock()
	clock.now = fixedNow(1000)

	server := serverClockFunc(func(ctx context.Context) (int64, error) {
		return 1250, nil
	})

	offset := clock.Calibrate(context.Background(), server, discardLogger())

	assert.Equal(t, int64(250), offset)
	assert.Equal(t, int64(1250), clock.Now())
}

func TestSkewClock_CalibrateFailureResetsToZero(t *testing.T) {
	clock := NewSkewClockWithOffset(500)
	clock.now = fixedNow(1000)

	server := serverClockFunc(func(ctx context.Context) (int64, error) {
		return 0, errors.New("offline")
	})

	offset := clock.Calibrate(context.Background(), server, discardLogger())

	assert.Equal(t, int64(0), offset)
	assert.Equal(t, int64(1000), clock.Now())
}

func TestSkewClock_Concurrent(t *testing.T) {
	clock := NewSkewClock()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			clock.SetOffset(int64(i))
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = clock.Now()
		}
	}()

	wg.Wait()
	assert.Equal(t, int64(999), clock.Offset())
}
