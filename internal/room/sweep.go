package room

import (
	"context"
	"time"
)

// Sweep removes rooms untouched for longer than the idle timeout, finished
// or abandoned mid-hand, and returns how many it removed.
func (m *Manager) Sweep() int {
	now := m.clock.Now()

	m.mu.Lock()
	var idle []string
	for id, r := range m.rooms {
		r.mu.Lock()
		expired := now.Sub(r.updatedAt) > m.idleTimeout
		r.mu.Unlock()
		if expired {
			delete(m.rooms, id)
			idle = append(idle, id)
		}
	}
	m.mu.Unlock()

	for _, id := range idle {
		m.notifier.closeRoom(id)
		m.logger.Debug("room swept", "room", id)
	}
	return len(idle)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := m.clock.NewTicker(interval, "room", "sweep")
	defer ticker.Stop()
	m.sweepLoop(ctx, ticker.C)
}

func (m *Manager) sweepLoop(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			if n := m.Sweep(); n > 0 {
				m.logger.Info("swept idle rooms", "count", n)
			}
		}
	}
}
