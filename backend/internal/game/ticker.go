package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// Ticker - основной цикл симуляции скринсейвера: с фиксированной
// частотой выполняет зарегистрированные системы в порядке приоритета
// и следит за их производительностью.
type Ticker struct {
	// Конфигурация
	targetTPS    int           // Целевая частота тиков в секунду
	tickDuration time.Duration // Длительность одного тика
	maxTickTime  time.Duration // Максимальное время на один тик

	// Состояние
	isRunning    bool
	tickCount    uint64
	startTime    time.Time
	lastTickTime time.Time

	// Системы
	systems      []TickSystem
	systemsMutex sync.RWMutex

	// Мониторинг производительности
	perfMonitor *PerformanceMonitor

	// Управление
	ctx       context.Context
	cancel    context.CancelFunc
	pauseChan chan bool

	// Метрики. statsMutex закрывает счетчики, которые пишет горутина
	// цикла, а читают GetStats и GetTickCount с других горутин.
	statsMutex      sync.RWMutex
	averageTickTime time.Duration
	maxObservedTick time.Duration
	skippedTicks    uint64

	// Логирование
	logger           *log.Logger
	warningThreshold time.Duration
}

// TickSystem интерфейс для всех систем симуляции
type TickSystem interface {
	Update(deltaTime time.Duration) error
	GetName() string
	GetPriority() int // Приоритет выполнения (меньше = раньше)
}

// NewTicker создает новый цикл симуляции
func NewTicker(targetTPS int, logger *log.Logger) *Ticker {
	if targetTPS <= 0 {
		targetTPS = 30 // 30 TPS достаточно для плавного полета букв
	}

	if logger == nil {
		logger = log.Default()
	}

	tickDuration := time.Second / time.Duration(targetTPS)
	ctx, cancel := context.WithCancel(context.Background())

	return &Ticker{
		targetTPS:        targetTPS,
		tickDuration:     tickDuration,
		maxTickTime:      tickDuration * 2,
		systems:          make([]TickSystem, 0),
		perfMonitor:      NewPerformanceMonitor(50, tickDuration/4),
		ctx:              ctx,
		cancel:           cancel,
		pauseChan:        make(chan bool, 1),
		logger:           logger,
		warningThreshold: tickDuration / 2,
	}
}

// Start запускает цикл симуляции
func (t *Ticker) Start() error {
	t.statsMutex.Lock()
	if t.isRunning {
		t.statsMutex.Unlock()
		return nil // Уже запущен
	}
	t.isRunning = true
	t.startTime = time.Now()
	t.lastTickTime = t.startTime
	t.statsMutex.Unlock()

	t.logger.Printf("[Ticker] Запуск цикла симуляции: %d TPS (тик каждые %v)",
		t.targetTPS, t.tickDuration)

	go t.loop()
	return nil
}

// Stop останавливает цикл симуляции
func (t *Ticker) Stop() {
	t.statsMutex.Lock()
	if !t.isRunning {
		t.statsMutex.Unlock()
		return
	}
	t.isRunning = false
	tickCount := t.tickCount
	t.statsMutex.Unlock()

	t.logger.Printf("[Ticker] Остановка цикла симуляции (выполнено тиков: %d)", tickCount)
	t.cancel()
}

// Pause приостанавливает выполнение систем
func (t *Ticker) Pause() {
	select {
	case t.pauseChan <- true:
	default:
	}
}

// Resume возобновляет выполнение систем
func (t *Ticker) Resume() {
	select {
	case t.pauseChan <- false:
	default:
	}
}

// RegisterSystem добавляет систему в цикл симуляции
func (t *Ticker) RegisterSystem(system TickSystem) {
	t.systemsMutex.Lock()
	defer t.systemsMutex.Unlock()

	t.systems = append(t.systems, system)

	// Сортируем по приоритету (меньше = выше приоритет)
	for i := len(t.systems) - 1; i > 0; i-- {
		if t.systems[i].GetPriority() < t.systems[i-1].GetPriority() {
			t.systems[i], t.systems[i-1] = t.systems[i-1], t.systems[i]
		} else {
			break
		}
	}

	t.perfMonitor.initSystemMetrics(system.GetName())

	t.logger.Printf("[Ticker] Зарегистрирована система: %s (приоритет: %d)",
		system.GetName(), system.GetPriority())
}

// loop - основной цикл
func (t *Ticker) loop() {
	ticker := time.NewTicker(t.tickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return

		case pause := <-t.pauseChan:
			if pause {
				// Ждем команды возобновления
				for pause {
					select {
					case <-t.ctx.Done():
						return
					case pause = <-t.pauseChan:
					}
				}
				// После паузы не считаем простой пропущенным временем
				t.lastTickTime = time.Now()
			}

		case tickTime := <-ticker.C:
			t.executeTick(tickTime)
		}
	}
}

// executeTick выполняет один тик
func (t *Ticker) executeTick(tickTime time.Time) {
	tickStart := time.Now()
	deltaTime := tickTime.Sub(t.lastTickTime)

	// Проверяем, не слишком ли большая задержка между тиками
	t.statsMutex.Lock()
	if deltaTime > t.tickDuration*2 {
		t.logger.Printf("[Ticker] ПРЕДУПРЕЖДЕНИЕ: Большая задержка между тиками: %v (ожидалось: %v)",
			deltaTime, t.tickDuration)
		t.skippedTicks++
	}
	t.tickCount++
	t.statsMutex.Unlock()

	t.lastTickTime = tickTime

	t.executeAllSystems(deltaTime)

	totalTickTime := time.Since(tickStart)
	t.updateTickMetrics(totalTickTime)
	t.checkPerformance(totalTickTime)
}

// executeAllSystems выполняет все зарегистрированные системы
func (t *Ticker) executeAllSystems(deltaTime time.Duration) {
	t.systemsMutex.RLock()
	systems := make([]TickSystem, len(t.systems))
	copy(systems, t.systems)
	t.systemsMutex.RUnlock()

	for _, system := range systems {
		t.executeSystem(system, deltaTime)
	}
}

// executeSystem выполняет одну систему с замером времени
func (t *Ticker) executeSystem(system TickSystem, deltaTime time.Duration) {
	systemStart := time.Now()
	systemName := system.GetName()

	defer func() {
		if r := recover(); r != nil {
			t.logger.Printf("[Ticker] КРИТИЧЕСКАЯ ОШИБКА в системе %s: %v", systemName, r)
			t.perfMonitor.recordError(systemName)
		}
	}()

	err := system.Update(deltaTime)

	executionTime := time.Since(systemStart)
	t.perfMonitor.recordExecution(systemName, executionTime)

	if err != nil {
		t.logger.Printf("[Ticker] Ошибка в системе %s: %v", systemName, err)
		t.perfMonitor.recordError(systemName)
	}
}

// GetTickCount возвращает текущее количество тиков
func (t *Ticker) GetTickCount() uint64 {
	t.statsMutex.RLock()
	defer t.statsMutex.RUnlock()
	return t.tickCount
}

// GetStats возвращает статистику цикла симуляции
func (t *Ticker) GetStats() map[string]interface{} {
	t.systemsMutex.RLock()
	systemsCount := len(t.systems)
	t.systemsMutex.RUnlock()

	t.statsMutex.RLock()
	defer t.statsMutex.RUnlock()

	uptime := time.Since(t.startTime)
	actualTPS := float64(t.tickCount) / uptime.Seconds()

	return map[string]interface{}{
		"target_tps":        t.targetTPS,
		"actual_tps":        actualTPS,
		"tick_count":        t.tickCount,
		"uptime_seconds":    uptime.Seconds(),
		"average_tick_time": t.averageTickTime,
		"max_observed_tick": t.maxObservedTick,
		"skipped_ticks":     t.skippedTicks,
		"is_running":        t.isRunning,
		"systems_count":     systemsCount,
	}
}

func (t *Ticker) updateTickMetrics(tickTime time.Duration) {
	t.statsMutex.Lock()
	defer t.statsMutex.Unlock()

	if tickTime > t.maxObservedTick {
		t.maxObservedTick = tickTime
	}

	// Простое скользящее среднее
	if t.averageTickTime == 0 {
		t.averageTickTime = tickTime
	} else {
		t.averageTickTime = (t.averageTickTime*9 + tickTime) / 10
	}
}

func (t *Ticker) checkPerformance(tickTime time.Duration) {
	if tickTime > t.maxTickTime {
		t.logger.Printf("[Ticker] КРИТИЧЕСКОЕ ПРЕДУПРЕЖДЕНИЕ: Тик превысил максимальное время! %v > %v (цель: %v)",
			tickTime, t.maxTickTime, t.tickDuration)
	} else if tickTime > t.warningThreshold {
		t.logger.Printf("[Ticker] ПРЕДУПРЕЖДЕНИЕ: Медленный тик: %v (цель: %v)",
			tickTime, t.tickDuration)
	}
}
