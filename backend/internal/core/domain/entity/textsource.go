package entity

// TextKind определяет вид источника текста буквы
type TextKind int

const (
	// TextStatic - текст задан литералом при создании
	TextStatic TextKind = iota
	// TextDynamic - текст вычисляется функцией при каждом разрешении
	TextDynamic
)

// TextSource - явный тегированный вариант источника текста: либо литерал,
// либо функция, возвращающая строку. Разрешается вызывающей стороной один
// раз за кадр, без угадывания по типу.
type TextSource struct {
	kind    TextKind
	literal string
	fn      func() string
}

// StaticText создает источник с фиксированным текстом
func StaticText(s string) TextSource {
	return TextSource{kind: TextStatic, literal: s}
}

// DynamicText создает источник, вычисляющий текст функцией
func DynamicText(fn func() string) TextSource {
	return TextSource{kind: TextDynamic, fn: fn}
}

// Kind возвращает вид источника
func (t TextSource) Kind() TextKind {
	return t.kind
}

// Resolve возвращает текущий текст источника
func (t TextSource) Resolve() string {
	if t.kind == TextDynamic && t.fn != nil {
		return t.fn()
	}
	return t.literal
}
