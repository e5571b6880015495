package ws

import (
	"time"

	"x-letters/backend/internal/core/port/in/lettercontrol"
)

// Константы для WebSocket сообщений
const (
	// Входящие от клиента
	MessageTypePing     = "ping"      // Пинг для измерения задержки
	MessageTypeViewport = "viewport"  // Клиент сообщает размеры вьюпорта
	MessageTypeText     = "type_text" // Набранный текст
	MessageTypeStyle    = "set_style" // Выбор стиля вращения
	MessageTypeCommit   = "commit"    // Выстроить буквы в строку

	// Исходящие к клиенту
	MessageTypePong     = "pong"     // Ответ на пинг
	MessageTypeCreate   = "create"   // Создание буквы
	MessageTypeUpdate   = "update"   // Обновление сцены
	MessageTypeConfetti = "confetti" // Залп конфетти
	MessageTypeAck      = "cmd_ack"  // Подтверждение команды
	MessageTypeError    = "error"    // Ошибка обработки
	MessageTypeInfo     = "info"     // Информационное сообщение
	MessageTypeStyles   = "styles"   // Доступные стили вращения
)

// GetCurrentServerTime возвращает текущее серверное время в миллисекундах
func GetCurrentServerTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// NewPongMessage создает новое сообщение-ответ на пинг
func NewPongMessage(clientTime float64) map[string]interface{} {
	return map[string]interface{}{
		"type":        MessageTypePong,
		"client_time": clientTime,
		"server_time": GetCurrentServerTime(),
	}
}

// NewAckMessage создает новое сообщение-подтверждение команды
func NewAckMessage(cmd string, clientTime float64) map[string]interface{} {
	return map[string]interface{}{
		"type":        MessageTypeAck,
		"cmd":         cmd,
		"client_time": clientTime,
		"server_time": GetCurrentServerTime(),
	}
}

// NewInfoMessage создает новое информационное сообщение
func NewInfoMessage(message string) map[string]interface{} {
	return map[string]interface{}{
		"type":    MessageTypeInfo,
		"message": message,
	}
}

// NewErrorMessage создает сообщение об ошибке
func NewErrorMessage(message string) map[string]interface{} {
	return map[string]interface{}{
		"type":    MessageTypeError,
		"message": message,
	}
}

// NewCreateMessage создает сообщение о новой букве
func NewCreateMessage(l lettercontrol.LetterState) map[string]interface{} {
	return map[string]interface{}{
		"type":        MessageTypeCreate,
		"id":          l.ID,
		"text":        l.Text,
		"x":           l.X,
		"y":           l.Y,
		"z":           l.Z,
		"width":       l.Width,
		"height":      l.Height,
		"depth":       l.Depth,
		"style":       l.Style,
		"server_time": GetCurrentServerTime(),
	}
}

// NewUpdateMessage создает сообщение с состоянием сцены
func NewUpdateMessage(letters []lettercontrol.LetterState, particles []lettercontrol.ParticleState) map[string]interface{} {
	letterList := make([]interface{}, 0, len(letters))
	for _, l := range letters {
		letterList = append(letterList, map[string]interface{}{
			"id":     l.ID,
			"text":   l.Text,
			"x":      l.X,
			"y":      l.Y,
			"z":      l.Z,
			"rot_x":  l.RotX,
			"rot_y":  l.RotY,
			"rot_z":  l.RotZ,
			"moving": l.Moving,
		})
	}

	particleList := make([]interface{}, 0, len(particles))
	for _, p := range particles {
		particleList = append(particleList, map[string]interface{}{
			"id":    p.ID,
			"x":     p.X,
			"y":     p.Y,
			"z":     p.Z,
			"color": p.Color,
			"ttl":   p.TTL,
		})
	}

	return map[string]interface{}{
		"type":        MessageTypeUpdate,
		"letters":     letterList,
		"confetti":    particleList,
		"server_time": GetCurrentServerTime(),
	}
}

// NewConfettiMessage создает сообщение о залпе конфетти
func NewConfettiMessage(count int) map[string]interface{} {
	return map[string]interface{}{
		"type":        MessageTypeConfetti,
		"count":       count,
		"server_time": GetCurrentServerTime(),
	}
}

// NewStylesMessage создает сообщение со списком доступных стилей
func NewStylesMessage(styles []string) map[string]interface{} {
	return map[string]interface{}{
		"type":   MessageTypeStyles,
		"styles": styles,
	}
}
