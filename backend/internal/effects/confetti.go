package effects

import (
	"log"
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Настройки конфетти
const (
	// DefaultBurstCount - количество частиц в одном залпе
	DefaultBurstCount = 120
	// MaxParticles - верхняя граница числа живых частиц
	MaxParticles = 400

	particleGravity  = -9.8
	particleDamping  = 0.992
	particleLifetime = 3.5
	burstSpeedMin    = 4.0
	burstSpeedMax    = 11.0
)

var confettiColors = []string{
	"#ff595e", "#ffca3a", "#8ac926", "#1982c4", "#6a4c93", "#ff9f1c",
}

// Particle - одна частица конфетти
type Particle struct {
	ID       int
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Color    string
	// TTL - оставшееся время жизни в секундах
	TTL float64
}

// Emitter хранит и симулирует частицы конфетти. Залп создается при
// фиксации букв, частицы разлетаются, падают под гравитацией и гаснут.
type Emitter struct {
	mu        sync.RWMutex
	particles []Particle
	nextID    int
	logger    *log.Logger
}

// NewEmitter создает эмиттер конфетти
func NewEmitter(logger *log.Logger) *Emitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Emitter{nextID: 1, logger: logger}
}

// Burst выпускает залп частиц из точки origin
func (e *Emitter) Burst(origin mgl64.Vec3, count int) {
	if count <= 0 {
		count = DefaultBurstCount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.particles)+count > MaxParticles {
		count = MaxParticles - len(e.particles)
	}

	for i := 0; i < count; i++ {
		// Случайное направление в верхней полусфере
		azimuth := rand.Float64() * 2 * math.Pi
		elevation := rand.Float64() * math.Pi / 2
		speed := burstSpeedMin + rand.Float64()*(burstSpeedMax-burstSpeedMin)

		dir := mgl64.Vec3{
			math.Cos(azimuth) * math.Cos(elevation),
			math.Sin(elevation),
			math.Sin(azimuth) * math.Cos(elevation) * 0.3,
		}

		e.particles = append(e.particles, Particle{
			ID:       e.nextID,
			Position: origin,
			Velocity: dir.Mul(speed),
			Color:    confettiColors[rand.Intn(len(confettiColors))],
			TTL:      particleLifetime,
		})
		e.nextID++
	}

	e.logger.Printf("[Confetti] Залп из %d частиц, всего живых: %d", count, len(e.particles))
}

// Update продвигает симуляцию частиц на deltaSeconds и убирает погасшие
func (e *Emitter) Update(deltaSeconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	alive := e.particles[:0]
	for _, p := range e.particles {
		p.TTL -= deltaSeconds
		if p.TTL <= 0 {
			continue
		}

		p.Velocity = p.Velocity.Mul(particleDamping)
		p.Velocity[1] += particleGravity * deltaSeconds
		p.Position = p.Position.Add(p.Velocity.Mul(deltaSeconds))

		alive = append(alive, p)
	}
	e.particles = alive
}

// Snapshot возвращает копию живых частиц для отправки клиентам
func (e *Emitter) Snapshot() []Particle {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Count возвращает число живых частиц
func (e *Emitter) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.particles)
}
