package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"x-letters/backend/internal/core/domain/entity"
)

// BoundingBox вычисляет мировой AABB буквы с учетом текущего поворота.
// Локальный бокс глифа центрирован в начале координат буквы, поэтому
// бокс поворачивается вокруг ее центра и сдвигается на позицию.
// Возвращает ok=false, если геометрия буквы еще не задана - вызывающая
// сторона пропускает такой кадр.
func BoundingBox(l *entity.Letter) (min, max mgl64.Vec3, ok bool) {
	if l == nil || l.Width <= 0 || l.Height <= 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	hx := l.Width / 2
	hy := l.Height / 2
	hz := l.Depth / 2

	rot := mgl64.Rotate3DX(l.Rotation.X()).
		Mul3(mgl64.Rotate3DY(l.Rotation.Y())).
		Mul3(mgl64.Rotate3DZ(l.Rotation.Z()))

	// Обходим все 8 углов локального бокса
	first := true
	for _, sx := range []float64{-hx, hx} {
		for _, sy := range []float64{-hy, hy} {
			for _, sz := range []float64{-hz, hz} {
				corner := rot.Mul3x1(mgl64.Vec3{sx, sy, sz}).Add(l.Position)
				if first {
					min, max = corner, corner
					first = false
					continue
				}
				for i := 0; i < 3; i++ {
					if corner[i] < min[i] {
						min[i] = corner[i]
					}
					if corner[i] > max[i] {
						max[i] = corner[i]
					}
				}
			}
		}
	}

	return min, max, true
}

// BoxCenter возвращает геометрический центр бокса
func BoxCenter(min, max mgl64.Vec3) mgl64.Vec3 {
	return min.Add(max).Mul(0.5)
}

// FrontTopLeft возвращает ближний к камере верхний левый угол бокса:
// минимальные X и Y при максимальном Z
func FrontTopLeft(min, max mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{min.X(), min.Y(), max.Z()}
}
