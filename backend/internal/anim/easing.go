package anim

import "math"

// EaseFunc преобразует нормализованное время анимации [0..1] в
// нормализованный прогресс. Стандартные кривые, дизайн кривых не наш.
type EaseFunc func(t float64) float64

// Linear - равномерное движение
func Linear(t float64) float64 {
	return t
}

// CubicInOut - плавный разгон и торможение
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 1 + f*f*f/2
}

// ElasticOut - пружинящее прибытие в цель, буквы слегка перелетают
// строку и возвращаются
func ElasticOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const period = 0.3
	return math.Pow(2, -10*t)*math.Sin((t-period/4)*(2*math.Pi)/period) + 1
}

// BackOut - небольшой перелет цели с возвратом
func BackOut(t float64) float64 {
	const s = 1.70158
	f := t - 1
	return f*f*((s+1)*f+s) + 1
}
