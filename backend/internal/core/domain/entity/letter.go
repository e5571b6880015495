package entity

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform представляет позицию и вращение объекта в мире.
// Вращение хранится как углы Эйлера в радианах.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

// AnimHandle представляет управляемую анимацию, принадлежащую конкретной букве.
// Анимация продвигается вытягивающим вызовом Advance из игрового цикла,
// глобального реестра анимаций нет.
type AnimHandle interface {
	// Advance продвигает анимацию на deltaTime и возвращает текущий
	// трансформ. Второе значение true, когда анимация завершена.
	Advance(deltaSeconds float64) (Transform, bool)

	// Cancel останавливает анимацию, дальнейшие Advance ничего не меняют
	Cancel()
}

// Letter представляет одну независимо летающую букву скринсейвера
type Letter struct {
	ID   int
	Text TextSource

	Position mgl64.Vec3
	Rotation mgl64.Vec3

	// Direction - единичный вектор в плоскости XY, умноженный на скорость.
	// Обнуляется при переходе в зафиксированное состояние.
	Direction mgl64.Vec3

	// Статичные размеры глифа без учета поворота. Width используется
	// при выстраивании букв в строку.
	Width  float64
	Height float64
	Depth  float64

	// ChangingDirection - защелка, не дающая отражать направление
	// несколько кадров подряд, пока буква все еще за границей экрана
	ChangingDirection bool

	// Moving - true во время свободного полета. Переход в false
	// необратим: после фиксации буква движется только анимацией.
	Moving bool

	// Anim - текущая анимация буквы (центрирование). Принадлежит букве
	// и сбрасывается явно при завершении.
	Anim AnimHandle

	// Style - имя выбранного стиля вращения
	Style string
}

// NewLetter создает новую букву с заданным идентификатором и геометрией
func NewLetter(id int, text TextSource, width, height, depth float64) *Letter {
	return &Letter{
		ID:     id,
		Text:   text,
		Width:  width,
		Height: height,
		Depth:  depth,
		Moving: true,
	}
}

// Transform возвращает текущий трансформ буквы
func (l *Letter) Transform() Transform {
	return Transform{Position: l.Position, Rotation: l.Rotation}
}

// ApplyTransform применяет трансформ к букве
func (l *Letter) ApplyTransform(t Transform) {
	l.Position = t.Position
	l.Rotation = t.Rotation
}

// Lock переводит букву в зафиксированное состояние. Направление
// обнуляется, обратного перехода нет.
func (l *Letter) Lock() {
	l.Moving = false
	l.Direction = mgl64.Vec3{}
}
