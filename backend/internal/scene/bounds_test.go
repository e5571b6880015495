package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"x-letters/backend/internal/core/domain/entity"
)

const eps = 1e-9

func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return math.Abs(a.X()-b.X()) < tol &&
		math.Abs(a.Y()-b.Y()) < tol &&
		math.Abs(a.Z()-b.Z()) < tol
}

func TestGlyphSize(t *testing.T) {
	w, h, d := GlyphSize('A')
	if w != defaultGlyphWidth {
		t.Errorf("Для руны без записи в таблице ожидалась стандартная ширина %v, получено %v", defaultGlyphWidth, w)
	}
	if h != GlyphHeight || d != GlyphDepth {
		t.Errorf("Высота и глубина глифа должны быть константными, получено h=%v d=%v", h, d)
	}

	wi, _, _ := GlyphSize('i')
	wm, _, _ := GlyphSize('m')
	if wi >= defaultGlyphWidth {
		t.Errorf("Узкая руна 'i' должна быть уже стандартной: %v", wi)
	}
	if wm <= defaultGlyphWidth {
		t.Errorf("Широкая руна 'm' должна быть шире стандартной: %v", wm)
	}
}

func TestBoundingBoxUnrotated(t *testing.T) {
	l := entity.NewLetter(1, entity.StaticText("W"), 2, 1, 0.5)
	l.Position = mgl64.Vec3{3, 4, 5}

	min, max, ok := BoundingBox(l)
	if !ok {
		t.Fatal("Бокс должен быть готов для буквы с заданной геометрией")
	}

	wantMin := mgl64.Vec3{2, 3.5, 4.75}
	wantMax := mgl64.Vec3{4, 4.5, 5.25}
	if !vecNear(min, wantMin, eps) {
		t.Errorf("Неверный min бокса: получено %v, ожидалось %v", min, wantMin)
	}
	if !vecNear(max, wantMax, eps) {
		t.Errorf("Неверный max бокса: получено %v, ожидалось %v", max, wantMax)
	}
}

func TestBoundingBoxNotReady(t *testing.T) {
	if _, _, ok := BoundingBox(nil); ok {
		t.Error("Для nil буквы бокс не должен быть готов")
	}

	l := entity.NewLetter(1, entity.StaticText("A"), 0, 0, 0)
	if _, _, ok := BoundingBox(l); ok {
		t.Error("Для буквы без геометрии бокс не должен быть готов")
	}
}

func TestBoundingBoxRotatedSwapsExtents(t *testing.T) {
	l := entity.NewLetter(1, entity.StaticText("W"), 2, 1, 0.5)
	l.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}

	min, max, ok := BoundingBox(l)
	if !ok {
		t.Fatal("Бокс должен быть готов")
	}

	// Поворот на 90 градусов вокруг Y меняет местами габариты по X и Z
	extentX := max.X() - min.X()
	extentZ := max.Z() - min.Z()
	if math.Abs(extentX-0.5) > 1e-9 {
		t.Errorf("После поворота габарит по X должен равняться глубине: %v", extentX)
	}
	if math.Abs(extentZ-2) > 1e-9 {
		t.Errorf("После поворота габарит по Z должен равняться ширине: %v", extentZ)
	}
}

func TestBoundingBoxRotationKeepsCenter(t *testing.T) {
	l := entity.NewLetter(1, entity.StaticText("G"), 0.7, 1, 0.2)
	l.Position = mgl64.Vec3{-2, 3, 1}
	l.Rotation = mgl64.Vec3{0.4, 1.1, -0.7}

	min, max, ok := BoundingBox(l)
	if !ok {
		t.Fatal("Бокс должен быть готов")
	}

	// Локальный бокс центрирован в начале координат буквы, поэтому
	// поворот не смещает центр
	if !vecNear(BoxCenter(min, max), l.Position, 1e-9) {
		t.Errorf("Центр бокса должен совпадать с позицией буквы: %v vs %v",
			BoxCenter(min, max), l.Position)
	}
}

func TestFrontTopLeft(t *testing.T) {
	min := mgl64.Vec3{1, 2, 3}
	max := mgl64.Vec3{4, 5, 6}

	got := FrontTopLeft(min, max)
	want := mgl64.Vec3{1, 2, 6}
	if got != want {
		t.Errorf("Неверный ближний верхний левый угол: %v, ожидалось %v", got, want)
	}
}
