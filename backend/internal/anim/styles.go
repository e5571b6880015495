package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Стили вращения летящих букв. Пользователь выбирает один из готовых
// стилей, стиль применяется ко всем буквам во время свободного полета.

// DefaultStyle - стиль, назначаемый буквам до выбора пользователя
const DefaultStyle = "tumble"

// Style описывает один готовый стиль вращения
type Style struct {
	Name string
	// Rate - угловые скорости по осям в радианах в секунду
	Rate mgl64.Vec3
	// Sway - амплитуда покачивания вокруг Z; при ненулевом значении
	// буква качается синусоидой вместо равномерного вращения
	Sway float64
}

var styles = map[string]Style{
	"tumble": {Name: "tumble", Rate: mgl64.Vec3{1.2, 1.8, 0.9}},
	"spin":   {Name: "spin", Rate: mgl64.Vec3{0, 2.4, 0}},
	"sway":   {Name: "sway", Rate: mgl64.Vec3{0, 0, 1.5}, Sway: 0.35},
}

// StyleByName возвращает стиль по имени
func StyleByName(name string) (Style, bool) {
	s, ok := styles[name]
	return s, ok
}

// StyleNames возвращает имена доступных стилей
func StyleNames() []string {
	return []string{"tumble", "spin", "sway"}
}

// Apply возвращает новое вращение буквы через deltaSeconds.
// elapsedSeconds - общее время жизни симуляции, нужно только
// покачиванию.
func (s Style) Apply(rotation mgl64.Vec3, elapsedSeconds, deltaSeconds float64) mgl64.Vec3 {
	if s.Sway > 0 {
		// Покачивание задает угол напрямую, а не приращением
		return mgl64.Vec3{rotation.X(), rotation.Y(), s.Sway * math.Sin(elapsedSeconds*s.Rate.Z())}
	}
	return rotation.Add(s.Rate.Mul(deltaSeconds))
}
