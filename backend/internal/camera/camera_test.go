package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProjectCenterOfScreen(t *testing.T) {
	cam := New()

	// Камера смотрит в начало координат вдоль оси Z, поэтому начало
	// координат проецируется точно в центр экрана
	x, y := cam.Project(mgl64.Vec3{0, 0, 0}, 800, 600)
	if math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Errorf("Начало координат должно проецироваться в центр экрана: (%v, %v)", x, y)
	}
}

func TestProjectAxesOrientation(t *testing.T) {
	cam := New()

	// Экранные координаты с началом в верхнем левом углу: положительный
	// мировой Y уходит вверх экрана, то есть в меньший экранный Y
	_, yUp := cam.Project(mgl64.Vec3{0, 5, 0}, 800, 600)
	if yUp >= 300 {
		t.Errorf("Точка выше центра сцены должна быть выше центра экрана: y=%v", yUp)
	}

	xRight, _ := cam.Project(mgl64.Vec3{5, 0, 0}, 800, 600)
	if xRight <= 400 {
		t.Errorf("Точка правее центра сцены должна быть правее центра экрана: x=%v", xRight)
	}
}

func TestProjectCloserIsBigger(t *testing.T) {
	cam := New()

	// Перспектива: одинаковое смещение по X ближе к камере дает большее
	// смещение на экране
	xFar, _ := cam.Project(mgl64.Vec3{2, 0, -10}, 800, 600)
	xNear, _ := cam.Project(mgl64.Vec3{2, 0, 10}, 800, 600)
	if xNear-400 <= xFar-400 {
		t.Errorf("Ближняя точка должна проецироваться дальше от центра: near=%v far=%v", xNear, xFar)
	}
}

func TestProjectInvalidViewport(t *testing.T) {
	cam := New()

	x, y := cam.Project(mgl64.Vec3{1, 2, 3}, 0, 600)
	if x != 0 || y != 0 {
		t.Errorf("Нулевой вьюпорт должен давать (0, 0), получено (%v, %v)", x, y)
	}
}

func TestProjectFuncMatchesProject(t *testing.T) {
	cam := New()
	project := cam.ProjectFunc(1280, 720)

	world := mgl64.Vec3{1.5, -2, 3}
	fx, fy := project(world)
	x, y := cam.Project(world, 1280, 720)
	if fx != x || fy != y {
		t.Errorf("Замыкание должно давать тот же результат, что и Project: (%v, %v) vs (%v, %v)", fx, fy, x, y)
	}
}
