package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"unicode"

	"github.com/go-gl/mathgl/mgl64"

	"x-letters/backend/internal/anim"
	"x-letters/backend/internal/camera"
	"x-letters/backend/internal/core/domain/entity"
	"x-letters/backend/internal/core/port/in/lettercontrol"
	"x-letters/backend/internal/effects"
	"x-letters/backend/internal/motion"
	"x-letters/backend/internal/scene"
)

// Настройки скринсейвера
const (
	// MaxLetters - предел суммарного числа букв на сцене
	MaxLetters = 12

	// LetterSpacing - зазор между соседними буквами в строке, мировые единицы
	LetterSpacing = 0.3

	// CenterDuration - длительность анимации выстраивания, секунды
	CenterDuration = 1.6

	// spawnSpread - разброс начальных позиций букв вокруг центра сцены
	spawnSpread = 3.0

	// Размеры вьюпорта до первого сообщения от клиента
	DefaultViewportW = 1280.0
	DefaultViewportH = 720.0
)

// ErrInputTooLong возвращается, когда набранный текст не помещается в
// допустимое число букв
var ErrInputTooLong = errors.New("input too long")

// SaverService реализует бизнес-логику скринсейвера: набор текста,
// выбор стиля вращения, фиксация строки с конфетти. Снаружи сервис
// виден через порт lettercontrol, игровой цикл дергает методы Step*.
type SaverService struct {
	controller *motion.Controller
	cam        *camera.Camera
	emitter    *effects.Emitter
	logger     *log.Logger

	// mu сериализует команды клиентов, приходящие с горутин соединений,
	// и кадровые методы игрового цикла. Держится на весь метод: фиксация
	// строки никогда не пересекается с шагом движения или анимации.
	mu        sync.Mutex
	viewportW float64
	viewportH float64
	style     anim.Style
	committed bool
	elapsed   float64
}

// NewSaverService создает сервис скринсейвера
func NewSaverService(controller *motion.Controller, cam *camera.Camera, emitter *effects.Emitter, logger *log.Logger) *SaverService {
	if logger == nil {
		logger = log.Default()
	}
	style, _ := anim.StyleByName(anim.DefaultStyle)
	return &SaverService{
		controller: controller,
		cam:        cam,
		emitter:    emitter,
		logger:     logger,
		viewportW:  DefaultViewportW,
		viewportH:  DefaultViewportH,
		style:      style,
	}
}

// TypeText добавляет буквы текста в свободный полет и возвращает снимки
// созданных букв - ровно те, о которых нужно сообщить клиентам. Пробельные
// руны пропускаются - у них нет видимого глифа. Если суммарное число букв
// превысит предел, не добавляется ничего.
func (s *SaverService) TypeText(text string) ([]lettercontrol.LetterState, error) {
	runes := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		runes = append(runes, r)
	}
	if len(runes) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller.Count()+len(runes) > MaxLetters {
		return nil, fmt.Errorf("%w: %d букв на сцене, добавляется %d, предел %d",
			ErrInputTooLong, s.controller.Count(), len(runes), MaxLetters)
	}

	created := make([]lettercontrol.LetterState, 0, len(runes))
	for _, r := range runes {
		w, h, d := scene.GlyphSize(r)
		l := s.controller.Add(entity.StaticText(string(r)), w, h, d)
		l.Style = s.style.Name
		l.Position = mgl64.Vec3{
			(rand.Float64() - 0.5) * spawnSpread,
			(rand.Float64() - 0.5) * spawnSpread,
			0,
		}
		created = append(created, letterState(l))
	}

	s.logger.Printf("[Saver] Добавлено %d букв, всего на сцене %d", len(created), s.controller.Count())
	return created, nil
}

// SetAnimationStyle выбирает стиль вращения для всех букв
func (s *SaverService) SetAnimationStyle(name string) error {
	style, ok := anim.StyleByName(name)
	if !ok {
		return fmt.Errorf("неизвестный стиль вращения: %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.style = style
	for _, l := range s.controller.Letters() {
		l.Style = style.Name
	}

	s.logger.Printf("[Saver] Выбран стиль вращения %q", name)
	return nil
}

// SetViewport запоминает размеры вьюпорта клиента
func (s *SaverService) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	s.viewportW = width
	s.viewportH = height
	s.mu.Unlock()
}

// Viewport возвращает актуальные размеры вьюпорта
func (s *SaverService) Viewport() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewportW, s.viewportH
}

// Commit выстраивает буквы в строку по центру: контроллер фиксирует
// буквы и выдает план, каждой букве назначается своя анимация к цели.
// Прежняя анимация буквы, если была, явно отменяется. Повторный вызов
// пересчитывает те же цели и безопасен; конфетти выпускается только
// первым результативным вызовом.
func (s *SaverService) Commit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := s.controller.CenterAndLock(LetterSpacing)
	if len(targets) == 0 {
		return false
	}

	byID := make(map[int]*entity.Letter)
	for _, l := range s.controller.Letters() {
		byID[l.ID] = l
	}

	for _, target := range targets {
		l := byID[target.ID]
		if l == nil {
			continue
		}
		if l.Anim != nil {
			l.Anim.Cancel()
		}
		l.Anim = anim.NewTween(target.From, target.To, CenterDuration, anim.ElasticOut)
	}

	first := !s.committed
	s.committed = true

	if first {
		s.emitter.Burst(mgl64.Vec3{0, 0, 0}, effects.DefaultBurstCount)
		s.logger.Printf("[Saver] Строка зафиксирована, %d букв, конфетти выпущено", len(targets))
	}
	return first
}

// StepLetters делает кадр свободного полета: применяет стиль вращения и
// шаг движения каждой летящей букве. Вызывается игровым циклом.
func (s *SaverService) StepLetters(deltaSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed += deltaSeconds
	project := s.cam.ProjectFunc(s.viewportW, s.viewportH)

	for _, l := range s.controller.Letters() {
		if !l.Moving {
			continue
		}
		if style, ok := anim.StyleByName(l.Style); ok {
			l.Rotation = style.Apply(l.Rotation, s.elapsed, deltaSeconds)
		}
		s.controller.Step(l, s.viewportW, s.viewportH, project, scene.BoundingBox)
	}
}

// AdvanceAnimations продвигает анимации зафиксированных букв.
// Завершенная анимация сбрасывается с буквы явно.
func (s *SaverService) AdvanceAnimations(deltaSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.controller.Letters() {
		if l.Anim == nil {
			continue
		}
		transform, done := l.Anim.Advance(deltaSeconds)
		l.ApplyTransform(transform)
		if done {
			l.Anim = nil
		}
	}
}

// UpdateConfetti продвигает симуляцию частиц
func (s *SaverService) UpdateConfetti(deltaSeconds float64) {
	s.emitter.Update(deltaSeconds)
}

// Snapshot возвращает состояние всех букв в порядке добавления.
// Источники текста разрешаются здесь, один раз на снимок.
func (s *SaverService) Snapshot() []lettercontrol.LetterState {
	s.mu.Lock()
	defer s.mu.Unlock()

	letters := s.controller.Letters()
	out := make([]lettercontrol.LetterState, 0, len(letters))
	for _, l := range letters {
		out = append(out, letterState(l))
	}
	return out
}

// ConfettiSnapshot возвращает живые частицы конфетти
func (s *SaverService) ConfettiSnapshot() []lettercontrol.ParticleState {
	particles := s.emitter.Snapshot()
	out := make([]lettercontrol.ParticleState, 0, len(particles))
	for _, p := range particles {
		out = append(out, lettercontrol.ParticleState{
			ID:    p.ID,
			X:     p.Position.X(),
			Y:     p.Position.Y(),
			Z:     p.Position.Z(),
			Color: p.Color,
			TTL:   p.TTL,
		})
	}
	return out
}

// Styles возвращает имена доступных стилей вращения
func (s *SaverService) Styles() []string {
	return anim.StyleNames()
}

// letterState строит снимок буквы для порта. Вызывается под s.mu.
func letterState(l *entity.Letter) lettercontrol.LetterState {
	return lettercontrol.LetterState{
		ID:     l.ID,
		Text:   l.Text.Resolve(),
		X:      l.Position.X(),
		Y:      l.Position.Y(),
		Z:      l.Position.Z(),
		RotX:   l.Rotation.X(),
		RotY:   l.Rotation.Y(),
		RotZ:   l.Rotation.Z(),
		Width:  l.Width,
		Height: l.Height,
		Depth:  l.Depth,
		Moving: l.Moving,
		Style:  l.Style,
	}
}
