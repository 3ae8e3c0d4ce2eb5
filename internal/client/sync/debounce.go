package sync

import (
	"sync"
	"time"
)

// debouncer единственный отменяемый таймер: каждый restart отменяет
// предыдущий и взводит новый. fire вызывается только после паузы delay
// без новых вызовов restart.
type debouncer struct {
	timer   *time.Timer
	fire    func()
	delay   time.Duration
	gen     uint64 // поколение таймера, отсекает сработавшие до Stop колбэки
	mu      sync.Mutex
	stopped bool
}

func newDebouncer(delay time.Duration, fire func()) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

func (d *debouncer) restart() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped || d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fire()
	})
}

// cancel отменяет взведенный таймер. Последующий restart снова взводит таймер.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
}

// stop отменяет таймер навсегда.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
	d.stopped = true
}

func (d *debouncer) armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}

func (d *debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
