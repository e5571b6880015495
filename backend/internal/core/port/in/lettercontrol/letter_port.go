package lettercontrol

// LetterState - снимок состояния одной буквы для отправки клиентам.
// Текст уже разрешен из источника, один раз на кадр.
type LetterState struct {
	ID    int
	Text  string
	X     float64
	Y     float64
	Z     float64
	RotX  float64
	RotY  float64
	RotZ  float64
	Width float64

	Height float64
	Depth  float64
	Moving bool
	Style  string
}

// ParticleState - снимок одной частицы конфетти
type ParticleState struct {
	ID    int
	X     float64
	Y     float64
	Z     float64
	Color string
	TTL   float64
}

// LetterControlPort определяет входной интерфейс управления скринсейвером
type LetterControlPort interface {
	// TypeText добавляет буквы набранного текста в свободный полет и
	// возвращает снимки созданных букв. Возвращает ошибку, если
	// суммарная длина превышает допустимую - тогда не создается ничего.
	TypeText(text string) ([]LetterState, error)

	// SetAnimationStyle выбирает один из готовых стилей вращения
	SetAnimationStyle(name string) error

	// SetViewport запоминает актуальные размеры вьюпорта клиента в
	// пикселях - они нужны проверкам выхода за края экрана
	SetViewport(width, height float64)

	// Commit выстраивает буквы в строку по центру и запускает конфетти.
	// Возвращает true, если залп конфетти был выпущен этим вызовом.
	Commit() bool

	// Snapshot возвращает состояние всех букв в порядке добавления
	Snapshot() []LetterState

	// ConfettiSnapshot возвращает живые частицы конфетти
	ConfettiSnapshot() []ParticleState

	// Styles возвращает имена доступных стилей вращения
	Styles() []string
}
