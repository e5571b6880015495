package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera представляет перспективную камеру сцены. Камера статична:
// скринсейвер смотрит на буквы из фиксированной точки на оси Z.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// FovY - вертикальный угол обзора в радианах
	FovY float64
	Near float64
	Far  float64
}

// New создает камеру с параметрами по умолчанию, совпадающими с
// настройками камеры three.js на клиенте
func New() *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, 0, 30},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     45 * math.Pi / 180,
		Near:     0.1,
		Far:      1000,
	}
}

// Project проецирует мировую точку в пиксельные координаты экрана.
// Начало координат - верхний левый угол, как у DOM: mgl64.Project дает
// оконные координаты с началом внизу, поэтому Y переворачивается.
func (c *Camera) Project(world mgl64.Vec3, viewportW, viewportH float64) (x, y float64) {
	if viewportW <= 0 || viewportH <= 0 {
		return 0, 0
	}

	view := mgl64.LookAtV(c.Position, c.Target, c.Up)
	proj := mgl64.Perspective(c.FovY, viewportW/viewportH, c.Near, c.Far)

	win := mgl64.Project(world, view, proj, 0, 0, int(viewportW), int(viewportH))
	return win.X(), viewportH - win.Y()
}

// ProjectFunc возвращает функцию проекции, замкнутую на текущие размеры
// вьюпорта. Функция создается заново каждый кадр, так как зависит от
// актуального состояния камеры и вьюпорта.
func (c *Camera) ProjectFunc(viewportW, viewportH float64) func(mgl64.Vec3) (float64, float64) {
	return func(world mgl64.Vec3) (float64, float64) {
		return c.Project(world, viewportW, viewportH)
	}
}
