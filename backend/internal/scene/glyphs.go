package scene

// Метрики глифов. Реальная геометрия букв строится на клиенте из шрифта,
// серверу для расчетов движения и выравнивания достаточно габаритов.
// Значения в мировых единицах при высоте буквы 1.0.

const (
	// GlyphHeight - высота глифа без поворота
	GlyphHeight = 1.0
	// GlyphDepth - глубина выдавливания глифа
	GlyphDepth = 0.2
	// defaultGlyphWidth - ширина для рун, которых нет в таблице
	defaultGlyphWidth = 0.7
)

// glyphWidths - ширины отдельных рун, отличающиеся от стандартной
var glyphWidths = map[rune]float64{
	'i': 0.3, 'j': 0.35, 'l': 0.3, 't': 0.45, 'f': 0.45, 'r': 0.5,
	'I': 0.35, 'J': 0.5,
	'm': 1.0, 'w': 0.95,
	'M': 1.0, 'W': 1.05,
	'.': 0.3, ',': 0.3, '!': 0.35, '\'': 0.25, ':': 0.3, ';': 0.3,
	'1': 0.45,
}

// GlyphSize возвращает габариты глифа для руны: ширину, высоту и глубину
func GlyphSize(r rune) (width, height, depth float64) {
	if w, ok := glyphWidths[r]; ok {
		return w, GlyphHeight, GlyphDepth
	}
	return defaultGlyphWidth, GlyphHeight, GlyphDepth
}
