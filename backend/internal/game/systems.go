package game

import (
	"time"

	"x-letters/backend/internal/telemetry"
)

// Системы симуляции скринсейвера. Порядок за тик: движение букв,
// анимации выстраивания, частицы конфетти, рассылка обновлений.

// LetterStepper - шаг свободного полета букв за кадр
type LetterStepper interface {
	StepLetters(deltaSeconds float64)
}

// AnimationAdvancer - продвижение анимаций зафиксированных букв
type AnimationAdvancer interface {
	AdvanceAnimations(deltaSeconds float64)
}

// ConfettiUpdater - продвижение симуляции частиц
type ConfettiUpdater interface {
	UpdateConfetti(deltaSeconds float64)
}

// UpdateBroadcaster - рассылка состояния сцены подключенным клиентам
type UpdateBroadcaster interface {
	BroadcastUpdate()
}

// MotionSystem выполняет шаг движения всех летящих букв
type MotionSystem struct {
	stepper LetterStepper
}

// NewMotionSystem создает систему движения букв
func NewMotionSystem(stepper LetterStepper) *MotionSystem {
	return &MotionSystem{stepper: stepper}
}

func (ms *MotionSystem) Update(deltaTime time.Duration) error {
	ms.stepper.StepLetters(deltaTime.Seconds())
	return nil
}

func (ms *MotionSystem) GetName() string { return "MotionSystem" }

func (ms *MotionSystem) GetPriority() int { return 10 }

// AnimationSystem продвигает анимации выстраивания букв
type AnimationSystem struct {
	advancer AnimationAdvancer
}

// NewAnimationSystem создает систему анимаций
func NewAnimationSystem(advancer AnimationAdvancer) *AnimationSystem {
	return &AnimationSystem{advancer: advancer}
}

func (as *AnimationSystem) Update(deltaTime time.Duration) error {
	as.advancer.AdvanceAnimations(deltaTime.Seconds())
	return nil
}

func (as *AnimationSystem) GetName() string { return "AnimationSystem" }

func (as *AnimationSystem) GetPriority() int { return 20 }

// ConfettiSystem продвигает симуляцию частиц конфетти
type ConfettiSystem struct {
	updater ConfettiUpdater
}

// NewConfettiSystem создает систему конфетти
func NewConfettiSystem(updater ConfettiUpdater) *ConfettiSystem {
	return &ConfettiSystem{updater: updater}
}

func (cs *ConfettiSystem) Update(deltaTime time.Duration) error {
	cs.updater.UpdateConfetti(deltaTime.Seconds())
	return nil
}

func (cs *ConfettiSystem) GetName() string { return "ConfettiSystem" }

func (cs *ConfettiSystem) GetPriority() int { return 30 }

// BroadcastSystem рассылает состояние сцены клиентам каждые
// everyTicks тиков
type BroadcastSystem struct {
	broadcaster UpdateBroadcaster
	everyTicks  uint64
	tick        uint64
}

// NewBroadcastSystem создает систему рассылки. everyTicks < 1
// означает рассылку каждый тик.
func NewBroadcastSystem(broadcaster UpdateBroadcaster, everyTicks uint64) *BroadcastSystem {
	if everyTicks < 1 {
		everyTicks = 1
	}
	return &BroadcastSystem{broadcaster: broadcaster, everyTicks: everyTicks}
}

func (bs *BroadcastSystem) Update(deltaTime time.Duration) error {
	bs.tick++
	if bs.tick%bs.everyTicks == 0 {
		bs.broadcaster.BroadcastUpdate()
	}
	return nil
}

func (bs *BroadcastSystem) GetName() string { return "BroadcastSystem" }

func (bs *BroadcastSystem) GetPriority() int { return 40 }

// TelemetrySystem периодически печатает сводку телеметрии движения.
// Сам менеджер решает, пора ли печатать, система лишь дергает его
// каждый тик.
type TelemetrySystem struct {
	manager *telemetry.Manager
}

// NewTelemetrySystem создает систему телеметрии
func NewTelemetrySystem(manager *telemetry.Manager) *TelemetrySystem {
	return &TelemetrySystem{manager: manager}
}

func (ts *TelemetrySystem) Update(deltaTime time.Duration) error {
	ts.manager.PrintSummary()
	return nil
}

func (ts *TelemetrySystem) GetName() string { return "TelemetrySystem" }

func (ts *TelemetrySystem) GetPriority() int { return 50 }
