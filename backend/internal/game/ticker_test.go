package game

import (
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"
)

type tickCounterSystem struct{ n atomic.Uint64 }

func (c *tickCounterSystem) Update(time.Duration) error { c.n.Add(1); return nil }
func (c *tickCounterSystem) GetName() string            { return "TickCounterSystem" }
func (c *tickCounterSystem) GetPriority() int           { return 1 }

func waitFor(t *testing.T, cond func() bool, message string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(message)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTicker_PauseAndResume(t *testing.T) {
	ticker := NewTicker(100, log.New(io.Discard, "", 0))
	counter := &tickCounterSystem{}
	ticker.RegisterSystem(counter)

	if err := ticker.Start(); err != nil {
		t.Fatal(err)
	}
	defer ticker.Stop()

	waitFor(t, func() bool { return counter.n.Load() >= 3 }, "Тики не пошли после запуска")

	ticker.Pause()

	// Цикл забирает команду паузы асинхронно: ждем окна тишины, за
	// которое при 100 TPS прошло бы с десяток тиков
	var frozen uint64
	waitFor(t, func() bool {
		before := counter.n.Load()
		time.Sleep(100 * time.Millisecond)
		frozen = counter.n.Load()
		return before == frozen
	}, "Тики не остановились после Pause")

	time.Sleep(150 * time.Millisecond)
	if got := counter.n.Load(); got != frozen {
		t.Errorf("На паузе тиков быть не должно: было %d, стало %d", frozen, got)
	}

	ticker.Resume()
	waitFor(t, func() bool { return counter.n.Load() > frozen }, "Тики не возобновились после Resume")
}

func TestTicker_StatsWhileRunning(t *testing.T) {
	ticker := NewTicker(100, log.New(io.Discard, "", 0))
	counter := &tickCounterSystem{}
	ticker.RegisterSystem(counter)

	if err := ticker.Start(); err != nil {
		t.Fatal(err)
	}
	defer ticker.Stop()

	waitFor(t, func() bool { return ticker.GetTickCount() >= 2 }, "Тики не пошли после запуска")

	stats := ticker.GetStats()
	if stats["target_tps"].(int) != 100 {
		t.Errorf("Ожидали целевую частоту 100 TPS, получили %v", stats["target_tps"])
	}
	if !stats["is_running"].(bool) {
		t.Error("Запущенный цикл должен отчитываться is_running=true")
	}
	if stats["systems_count"].(int) != 1 {
		t.Errorf("Ожидали одну зарегистрированную систему, получили %v", stats["systems_count"])
	}
	if stats["tick_count"].(uint64) == 0 {
		t.Error("Счетчик тиков в статистике должен расти")
	}
}
