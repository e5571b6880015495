package motion

import (
	"log"
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"x-letters/backend/internal/core/domain/entity"
	"x-letters/backend/internal/telemetry"
)

// DefaultMoveSpeed - длина вектора направления буквы, то есть шаг
// перемещения за один кадр
const DefaultMoveSpeed = 0.08

// ProjectFunc проецирует мировую точку в пиксельные координаты экрана
// с началом в верхнем левом углу. Передается заново на каждый вызов,
// так как зависит от текущего состояния камеры.
type ProjectFunc func(world mgl64.Vec3) (x, y float64)

// BoxFunc возвращает мировой AABB буквы по ее текущей геометрии и
// позиции. ok=false означает, что геометрия еще не готова.
type BoxFunc func(l *entity.Letter) (min, max mgl64.Vec3, ok bool)

// LayoutTarget - пара трансформов для одной буквы: откуда и куда ее
// вести при выстраивании в строку. Саму интерполяцию выполняет внешний
// аниматор.
type LayoutTarget struct {
	ID   int
	From entity.Transform
	To   entity.Transform
}

// Controller управляет движением букв: хранит их в порядке добавления,
// делает шаг движения с отражением от краев экрана и строит план
// выравнивания по центру
type Controller struct {
	mu        sync.RWMutex
	letters   []*entity.Letter
	nextID    int
	moveSpeed float64
	logger    *log.Logger
}

// NewController создает контроллер движения
func NewController(moveSpeed float64, logger *log.Logger) *Controller {
	if moveSpeed <= 0 {
		moveSpeed = DefaultMoveSpeed
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		moveSpeed: moveSpeed,
		nextID:    1,
		logger:    logger,
	}
}

// Add создает новую букву и включает ее в свободный полет. Направление -
// случайный единичный вектор в плоскости XY, умноженный на скорость.
// Идентификаторы уникальны и монотонно растут.
func (c *Controller) Add(text entity.TextSource, width, height, depth float64) *entity.Letter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l := entity.NewLetter(c.nextID, text, width, height, depth)
	c.nextID++

	angle := rand.Float64() * 2 * math.Pi
	l.Direction = mgl64.Vec3{math.Cos(angle), math.Sin(angle), 0}.Mul(c.moveSpeed)

	c.letters = append(c.letters, l)

	c.logger.Printf("[Motion] Добавлена буква #%d %q, направление (%.3f, %.3f)",
		l.ID, text.Resolve(), l.Direction.X(), l.Direction.Y())
	telemetry.Global.LogEvent(l.ID, telemetry.EventSpawn, toVec(l.Position), toVec(l.Direction))
	return l
}

// Letters возвращает буквы в порядке добавления. Порядок добавления -
// авторитетный порядок выравнивания: первая добавленная буква левее всех.
func (c *Controller) Letters() []*entity.Letter {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*entity.Letter, len(c.letters))
	copy(out, c.letters)
	return out
}

// Count возвращает количество букв
func (c *Controller) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.letters)
}

// Step делает один шаг движения буквы: проверяет выход за края экрана,
// при необходимости отражает направление и сдвигает букву.
//
// Отражение выполняется относительно нормали одной оси, а не настоящей
// нормали края: инвертируется только провинившаяся компонента, получается
// классический отскок скринсейвера. Проверки две: по крайним точкам бокса
// с защелкой от повторного отражения, и по центру бокса без защелки -
// крупная буква может держать центр на экране при торчащих краях и
// наоборот, вместе обе проверки не дают букве навсегда уйти из кадра.
//
// Для зафиксированной буквы и для буквы без готовой геометрии вызов
// ничего не делает, это не ошибка.
func (c *Controller) Step(l *entity.Letter, viewportW, viewportH float64, project ProjectFunc, box BoxFunc) {
	if l == nil || !l.Moving {
		return
	}

	bmin, bmax, ok := box(l)
	if !ok {
		return
	}

	// Опорные точки: ближний верхний левый угол (min X, min Y, max Z),
	// максимальный угол и геометрический центр бокса
	frontX, frontY := project(mgl64.Vec3{bmin.X(), bmin.Y(), bmax.Z()})
	maxX, maxY := project(bmax)
	centerX, centerY := project(bmin.Add(bmax).Mul(0.5))

	widthExceeded := frontX <= 0 || maxX >= viewportW
	heightExceeded := maxY <= 0 || frontY >= viewportH

	if widthExceeded || heightExceeded {
		if !l.ChangingDirection {
			if widthExceeded {
				l.Direction = reflect(l.Direction, mgl64.Vec3{1, 0, 0})
				telemetry.Global.LogEvent(l.ID, telemetry.EventReflectX, toVec(l.Position), toVec(l.Direction))
			} else {
				l.Direction = reflect(l.Direction, mgl64.Vec3{0, 1, 0})
				telemetry.Global.LogEvent(l.ID, telemetry.EventReflectY, toVec(l.Position), toVec(l.Direction))
			}
			l.ChangingDirection = true
		}
	} else {
		l.ChangingDirection = false
	}

	// Проверка по центру без защелки: срабатывает каждый кадр, пока
	// центр за экраном
	centerExceededWidth := centerX <= 0 || centerX >= viewportW
	centerExceededHeight := centerY <= 0 || centerY >= viewportH

	if centerExceededWidth {
		l.Direction = reflect(l.Direction, mgl64.Vec3{1, 0, 0})
	} else if centerExceededHeight {
		l.Direction = reflect(l.Direction, mgl64.Vec3{0, 1, 0})
	}

	l.Position = l.Position.Add(l.Direction)
}

// CenterAndLock строит план выравнивания букв в горизонтальную строку по
// центру сцены и фиксирует буквы. Ширины берутся статичные, замеренные
// при создании буквы - строка всегда считается по неповернутым глифам.
// План детерминирован для одного и того же набора букв, повторный вызов
// дает те же целевые трансформы. Пустой набор букв - no-op.
func (c *Controller) CenterAndLock(spacing float64) []LayoutTarget {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.letters) == 0 {
		return nil
	}

	totalWidth := spacing * float64(len(c.letters)-1)
	for _, l := range c.letters {
		totalWidth += l.Width
	}

	targets := make([]LayoutTarget, 0, len(c.letters))
	cursor := -totalWidth / 2

	for _, l := range c.letters {
		to := entity.Transform{
			Position: mgl64.Vec3{cursor + l.Width/2, 0, 0},
			Rotation: mgl64.Vec3{},
		}
		targets = append(targets, LayoutTarget{ID: l.ID, From: l.Transform(), To: to})
		cursor += l.Width + spacing

		l.Lock()
		telemetry.Global.LogEvent(l.ID, telemetry.EventCommit, toVec(to.Position), telemetry.Vector3{})
	}

	c.logger.Printf("[Motion] Буквы зафиксированы: %d целей, общая ширина %.2f",
		len(targets), totalWidth)
	return targets
}

// reflect отражает вектор d относительно нормали n
func reflect(d, n mgl64.Vec3) mgl64.Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

func toVec(v mgl64.Vec3) telemetry.Vector3 {
	return telemetry.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}
