package anim

import (
	"github.com/go-gl/mathgl/mgl64"

	"x-letters/backend/internal/core/domain/entity"
)

// Tween интерполирует трансформ буквы от исходного к целевому за
// заданную длительность. Продвигается вытягивающими вызовами Advance из
// игрового цикла - глобального реестра активных анимаций нет, каждый
// Tween принадлежит своей букве и сбрасывается явно.
type Tween struct {
	from     entity.Transform
	to       entity.Transform
	duration float64
	elapsed  float64
	ease     EaseFunc
	done     bool
}

// NewTween создает анимацию трансформа. durationSeconds должна быть
// положительной, иначе анимация завершается первым же вызовом Advance.
func NewTween(from, to entity.Transform, durationSeconds float64, ease EaseFunc) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{
		from:     from,
		to:       to,
		duration: durationSeconds,
		ease:     ease,
	}
}

// Advance продвигает анимацию на deltaSeconds и возвращает текущий
// трансформ. Второе значение true, когда цель достигнута: трансформ при
// этом равен целевому точно, без остаточной ошибки интерполяции.
func (t *Tween) Advance(deltaSeconds float64) (entity.Transform, bool) {
	if t.done {
		return t.to, true
	}

	t.elapsed += deltaSeconds
	if t.duration <= 0 || t.elapsed >= t.duration {
		t.done = true
		return t.to, true
	}

	k := t.ease(t.elapsed / t.duration)
	current := entity.Transform{
		Position: lerpVec(t.from.Position, t.to.Position, k),
		Rotation: lerpVec(t.from.Rotation, t.to.Rotation, k),
	}
	return current, false
}

// Cancel останавливает анимацию на целевом трансформе
func (t *Tween) Cancel() {
	t.done = true
}

// Done сообщает, завершена ли анимация
func (t *Tween) Done() bool {
	return t.done
}

func lerpVec(a, b mgl64.Vec3, k float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(k))
}
