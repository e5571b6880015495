package motion

import (
	"io"
	"log"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"x-letters/backend/internal/core/domain/entity"
)

const (
	testViewportW = 800.0
	testViewportH = 600.0
)

func newTestController() *Controller {
	logger := log.New(io.Discard, "", 0)
	return NewController(DefaultMoveSpeed, logger)
}

// ortoProject - простая проекция для тестов: мировой X/Y в пиксели
// один к одному, начало экрана в верхнем левом углу
func ortoProject(world mgl64.Vec3) (float64, float64) {
	return world.X() + testViewportW/2, testViewportH/2 - world.Y()
}

// axisBox - AABB буквы без учета поворота
func axisBox(l *entity.Letter) (mgl64.Vec3, mgl64.Vec3, bool) {
	half := mgl64.Vec3{l.Width / 2, l.Height / 2, l.Depth / 2}
	return l.Position.Sub(half), l.Position.Add(half), true
}

// insideBox - бокс, который всегда целиком на экране
func insideBox(l *entity.Letter) (mgl64.Vec3, mgl64.Vec3, bool) {
	return mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}, true
}

// hugeBox - бокс, который всегда шире экрана (тест по краям срабатывает
// каждый кадр)
func hugeBox(l *entity.Letter) (mgl64.Vec3, mgl64.Vec3, bool) {
	return mgl64.Vec3{-10000, -1, -1}, mgl64.Vec3{10000, 1, 1}, true
}

func TestStep_LatchReflectsOnlyOnce(t *testing.T) {
	c := newTestController()
	l := c.Add(entity.StaticText("A"), 0.7, 1.0, 0.2)
	l.Direction = mgl64.Vec3{0.1, 0.05, 0}

	// Тест по краям срабатывает N кадров подряд - отражение должно
	// случиться ровно один раз, на первом кадре
	for i := 0; i < 5; i++ {
		c.Step(l, testViewportW, testViewportH, ortoProject, hugeBox)
	}

	if l.Direction.X() != -0.1 || l.Direction.Y() != 0.05 {
		t.Errorf("Ожидали однократное отражение (-0.1, 0.05), получили (%.3f, %.3f)",
			l.Direction.X(), l.Direction.Y())
	}
	if !l.ChangingDirection {
		t.Error("Защелка должна быть взведена, пока буква за границей")
	}

	// Один кадр внутри экрана сбрасывает защелку
	c.Step(l, testViewportW, testViewportH, ortoProject, insideBox)
	if l.ChangingDirection {
		t.Error("Защелка должна сброситься, когда тест по краям перестал срабатывать")
	}

	// Новое пересечение границы - новое отражение
	c.Step(l, testViewportW, testViewportH, ortoProject, hugeBox)
	if l.Direction.X() != 0.1 {
		t.Errorf("После сброса защелки ожидали повторное отражение, X = %.3f", l.Direction.X())
	}
}

func TestStep_AxisOnlyReflection(t *testing.T) {
	c := newTestController()

	// Выход за правый край: инвертируется только X. Центр буквы при
	// этом остается на экране, срабатывает только тест по краям.
	l := c.Add(entity.StaticText("B"), 1.0, 1.0, 0.2)
	l.Position = mgl64.Vec3{testViewportW/2 - 0.1, 0, 0}
	l.Direction = mgl64.Vec3{0.06, 0.03, 0}
	before := l.Direction.Len()

	c.Step(l, testViewportW, testViewportH, ortoProject, axisBox)

	if l.Direction.X() != -0.06 || l.Direction.Y() != 0.03 || l.Direction.Z() != 0 {
		t.Errorf("Отражение по нормали (1,0,0): ожидали (-0.06, 0.03, 0), получили %v", l.Direction)
	}
	if math.Abs(l.Direction.Len()-before) > 1e-12 {
		t.Errorf("Длина направления должна сохраняться: было %.6f, стало %.6f", before, l.Direction.Len())
	}

	// Выход за верхний край: инвертируется только Y
	l2 := c.Add(entity.StaticText("C"), 1.0, 1.0, 0.2)
	l2.Position = mgl64.Vec3{0, testViewportH/2 - 0.3, 0}
	l2.Direction = mgl64.Vec3{0.06, 0.03, 0}

	c.Step(l2, testViewportW, testViewportH, ortoProject, axisBox)

	if l2.Direction.X() != 0.06 || l2.Direction.Y() != -0.03 {
		t.Errorf("Отражение по нормали (0,1,0): ожидали (0.06, -0.03), получили %v", l2.Direction)
	}
}

func TestStep_CenterTestIndependentOfLatch(t *testing.T) {
	c := newTestController()
	l := c.Add(entity.StaticText("D"), 0.7, 1.0, 0.2)
	l.Direction = mgl64.Vec3{0.05, 0, 0}

	// Проекция, при которой углы бокса на экране, а центр - за левым
	// краем. Тест по краям не срабатывает, тест по центру срабатывает.
	center := mgl64.Vec3{0, 0, 0} // центр insideBox
	project := func(world mgl64.Vec3) (float64, float64) {
		if world == center {
			return -10, testViewportH / 2
		}
		return testViewportW / 2, testViewportH / 2
	}

	c.Step(l, testViewportW, testViewportH, project, insideBox)

	if l.Direction.X() != -0.05 {
		t.Errorf("Тест по центру должен отражать направление, X = %.3f", l.Direction.X())
	}
	if l.ChangingDirection {
		t.Error("Путь через тест по центру не должен трогать защелку")
	}

	// Без защелки отражение по центру повторяется каждый кадр
	c.Step(l, testViewportW, testViewportH, project, insideBox)
	if l.Direction.X() != 0.05 {
		t.Errorf("Второй кадр за границей по центру должен отразить снова, X = %.3f", l.Direction.X())
	}
}

func TestStep_SkipsWithoutBoundingBox(t *testing.T) {
	c := newTestController()
	l := c.Add(entity.StaticText("E"), 0.7, 1.0, 0.2)
	l.Direction = mgl64.Vec3{0.05, 0.02, 0}

	noBox := func(l *entity.Letter) (mgl64.Vec3, mgl64.Vec3, bool) {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	c.Step(l, testViewportW, testViewportH, ortoProject, noBox)

	if l.Position != (mgl64.Vec3{}) {
		t.Errorf("Без готовой геометрии кадр пропускается, позиция = %v", l.Position)
	}
}

func TestStep_LockedLetterIsImmovable(t *testing.T) {
	c := newTestController()
	l := c.Add(entity.StaticText("F"), 0.7, 1.0, 0.2)
	c.CenterAndLock(0.3)

	pos := l.Position
	for i := 0; i < 10; i++ {
		c.Step(l, testViewportW, testViewportH, ortoProject, hugeBox)
	}

	if l.Position != pos {
		t.Errorf("Зафиксированная буква не должна двигаться: %v -> %v", pos, l.Position)
	}
	if l.Direction != (mgl64.Vec3{}) {
		t.Errorf("Направление зафиксированной буквы должно быть нулевым: %v", l.Direction)
	}
	if l.Moving {
		t.Error("Переход в зафиксированное состояние необратим")
	}
}

func TestCenterAndLock_DeterministicLayout(t *testing.T) {
	c := newTestController()
	widths := []float64{10, 6, 8}
	for i, w := range widths {
		c.Add(entity.StaticText(string(rune('A'+i))), w, 1.0, 0.2)
	}

	targets := c.CenterAndLock(4)

	// Общая ширина 10+6+8+4+4 = 32, центры: -11, 1, 12
	expected := []float64{-11, 1, 12}
	if len(targets) != len(expected) {
		t.Fatalf("Ожидали %d целей, получили %d", len(expected), len(targets))
	}
	for i, target := range targets {
		if math.Abs(target.To.Position.X()-expected[i]) > 1e-9 {
			t.Errorf("Цель %d: ожидали X=%.1f, получили %.6f", i, expected[i], target.To.Position.X())
		}
		if target.To.Position.Y() != 0 || target.To.Position.Z() != 0 {
			t.Errorf("Цель %d: Y и Z должны быть нулевыми, получили %v", i, target.To.Position)
		}
		if target.To.Rotation != (mgl64.Vec3{}) {
			t.Errorf("Цель %d: вращение должно быть тождественным, получили %v", i, target.To.Rotation)
		}
	}
}

func TestCenterAndLock_Idempotent(t *testing.T) {
	c := newTestController()
	for _, w := range []float64{2, 3, 1.5} {
		c.Add(entity.StaticText("x"), w, 1.0, 0.2)
	}

	first := c.CenterAndLock(0.5)
	second := c.CenterAndLock(0.5)

	if len(first) != len(second) {
		t.Fatalf("Повторный вызов дал другое количество целей: %d и %d", len(first), len(second))
	}
	for i := range first {
		if first[i].To != second[i].To {
			t.Errorf("Цель %d отличается при повторном вызове: %v и %v", i, first[i].To, second[i].To)
		}
	}
}

func TestCenterAndLock_EmptyIsNoop(t *testing.T) {
	c := newTestController()
	if targets := c.CenterAndLock(1.0); targets != nil {
		t.Errorf("Для пустого набора букв целей быть не должно, получили %v", targets)
	}
}

func TestCenterAndLock_InsertionOrderIsAuthoritative(t *testing.T) {
	c := newTestController()
	// Буквы добавляются как C, A, T - выстраивание не должно
	// переупорядочивать их ни по ширине, ни по чему-либо еще
	c.Add(entity.StaticText("C"), 3.0, 1.0, 0.2)
	c.Add(entity.StaticText("A"), 1.0, 1.0, 0.2)
	c.Add(entity.StaticText("T"), 2.0, 1.0, 0.2)

	targets := c.CenterAndLock(0.5)
	letters := c.Letters()

	for i := 1; i < len(targets); i++ {
		if targets[i].To.Position.X() <= targets[i-1].To.Position.X() {
			t.Errorf("Цели должны идти слева направо в порядке добавления: %v", targets)
		}
	}
	order := ""
	for i, target := range targets {
		if target.ID != letters[i].ID {
			t.Errorf("Цель %d ссылается на букву #%d, ожидали #%d", i, target.ID, letters[i].ID)
		}
		order += letters[i].Text.Resolve()
	}
	if order != "CAT" {
		t.Errorf("Порядок букв в строке должен быть CAT, получили %s", order)
	}
}

func TestAdd_IDsUniqueAndMonotonic(t *testing.T) {
	c := newTestController()
	prev := 0
	for i := 0; i < 5; i++ {
		l := c.Add(entity.StaticText("x"), 0.7, 1.0, 0.2)
		if l.ID <= prev {
			t.Errorf("Идентификаторы должны монотонно расти: %d после %d", l.ID, prev)
		}
		prev = l.ID

		if l.Direction.Len() == 0 {
			t.Error("Направление летящей буквы не должно быть нулевым")
		}
		if math.Abs(l.Direction.Len()-DefaultMoveSpeed) > 1e-9 {
			t.Errorf("Длина направления должна равняться скорости %.3f, получили %.6f",
				DefaultMoveSpeed, l.Direction.Len())
		}
		if l.Direction.Z() != 0 {
			t.Error("Направление должно лежать в плоскости XY")
		}
	}
}
