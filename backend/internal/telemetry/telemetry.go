package telemetry

import (
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"
)

// Vector3 структура для 3D вектора
type Vector3 struct {
	X, Y, Z float64
}

// События движения букв
const (
	EventSpawn    = "spawn"     // Буква создана и пущена в полет
	EventReflectX = "reflect_x" // Отскок от левого или правого края
	EventReflectY = "reflect_y" // Отскок от верхнего или нижнего края
	EventCommit   = "commit"    // Буква зафиксирована в строке
)

// EventData структура для сбора телеметрии буквы
type EventData struct {
	Timestamp int64   `json:"timestamp"` // Время в миллисекундах
	LetterID  int     `json:"letter_id"` // ID буквы
	Event     string  `json:"event"`     // Тип события
	Position  Vector3 `json:"position"`  // Позиция
	Direction Vector3 `json:"direction"` // Направление движения
	Speed     float64 `json:"speed"`     // Модуль направления
}

// Manager управляет сбором и выводом телеметрии движения букв
type Manager struct {
	enabled    bool
	data       []EventData
	mutex      sync.RWMutex
	maxEntries int

	// Счетчики для статистики
	counters      map[string]int
	lastPrint     time.Time
	printInterval time.Duration
}

// NewManager создает новый менеджер телеметрии
func NewManager() *Manager {
	return &Manager{
		data:          make([]EventData, 0),
		maxEntries:    500, // Храним последние 500 событий
		counters:      make(map[string]int),
		lastPrint:     time.Now(),
		printInterval: 5 * time.Second, // Выводим статистику каждые 5 секунд
	}
}

// LogEvent записывает событие движения буквы
func (m *Manager) LogEvent(letterID int, event string, position, direction Vector3) {
	if !m.isEnabled() {
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry := EventData{
		Timestamp: time.Now().UnixMilli(),
		LetterID:  letterID,
		Event:     event,
		Position:  position,
		Direction: direction,
		Speed:     calculateSpeed(direction),
	}

	m.data = append(m.data, entry)

	// Ограничиваем размер буфера
	if len(m.data) > m.maxEntries {
		m.data = m.data[1:]
	}

	m.counters[event]++
}

// PrintSummary выводит сводку телеметрии, не чаще одного раза за интервал
func (m *Manager) PrintSummary() {
	if !m.isEnabled() {
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	if now.Sub(m.lastPrint) < m.printInterval {
		return
	}

	log.Println("🔬 [Telemetry] ===== ТЕЛЕМЕТРИЯ ДВИЖЕНИЯ =====")
	log.Printf("📊 [Telemetry] Всего событий в буфере: %d", len(m.data))

	for event, count := range m.counters {
		log.Printf("📈 [Telemetry] %s: %d", event, count)
	}

	m.printRecentLetterData()

	// Сброс счетчиков
	m.counters = make(map[string]int)
	m.lastPrint = now

	log.Println("🔬 [Telemetry] ================================")
}

// printRecentLetterData выводит последнее событие каждой буквы
func (m *Manager) printRecentLetterData() {
	letterData := make(map[int]EventData)

	for i := len(m.data) - 1; i >= 0; i-- {
		entry := m.data[i]
		if _, exists := letterData[entry.LetterID]; !exists {
			letterData[entry.LetterID] = entry
		}
	}

	for letterID, data := range letterData {
		timestamp := time.UnixMilli(data.Timestamp)

		log.Printf("🔤 [Telemetry] Буква #%d [%s]: %s", letterID,
			timestamp.Format("15:04:05.000"), data.Event)
		log.Printf("   📍 Позиция: (%.2f, %.2f, %.2f)",
			data.Position.X, data.Position.Y, data.Position.Z)
		log.Printf("   🏃 Направление: (%.3f, %.3f, %.3f) |%.3f|",
			data.Direction.X, data.Direction.Y, data.Direction.Z, data.Speed)
	}
}

// GetJSON возвращает собранные события в JSON формате
func (m *Manager) GetJSON() (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	jsonData, err := json.MarshalIndent(m.data, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonData), nil
}

// Counters возвращает копию счетчиков событий
func (m *Manager) Counters() map[string]int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out
}

// SetEnabled включает/выключает телеметрию
func (m *Manager) SetEnabled(enabled bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.enabled = enabled
	log.Printf("🔬 [Telemetry] Телеметрия %s", map[bool]string{true: "включена", false: "выключена"}[enabled])
}

func (m *Manager) isEnabled() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.enabled
}

// Clear очищает все данные телеметрии
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data = make([]EventData, 0)
	m.counters = make(map[string]int)
}

// calculateSpeed вычисляет модуль вектора направления
func calculateSpeed(direction Vector3) float64 {
	return math.Sqrt(direction.X*direction.X + direction.Y*direction.Y + direction.Z*direction.Z)
}

// Глобальный экземпляр телеметрии, по умолчанию выключен
var Global = NewManager()
