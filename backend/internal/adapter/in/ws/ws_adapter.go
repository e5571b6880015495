package ws

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"x-letters/backend/internal/core/domain/service"
	"x-letters/backend/internal/core/port/in/lettercontrol"
)

// WSAdapter - входной адаптер WebSocket: принимает команды клиентов
// (набор текста, стиль, фиксация) и рассылает всем подключенным клиентам
// состояние сцены
type WSAdapter struct {
	upgrader  websocket.Upgrader
	handlers  map[string]func(*SafeWriter, map[string]interface{}) error
	port      lettercontrol.LetterControlPort
	clients   map[*SafeWriter]bool
	clientsMu sync.Mutex
	logger    *log.Logger
}

// NewWSAdapter создает новый экземпляр WSAdapter
func NewWSAdapter(port lettercontrol.LetterControlPort, logger *log.Logger) *WSAdapter {
	if logger == nil {
		logger = log.Default()
	}
	a := &WSAdapter{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]func(*SafeWriter, map[string]interface{}) error),
		port:     port,
		clients:  make(map[*SafeWriter]bool),
		logger:   logger,
	}
	a.registerHandlers()
	return a
}

// registerHandlers регистрирует обработчики сообщений
func (a *WSAdapter) registerHandlers() {
	a.handlers[MessageTypePing] = func(conn *SafeWriter, message map[string]interface{}) error {
		clientTime, _ := message["client_time"].(float64)
		return conn.SendJSON(NewPongMessage(clientTime))
	}

	a.handlers[MessageTypeViewport] = func(conn *SafeWriter, message map[string]interface{}) error {
		width, ok1 := message["width"].(float64)
		height, ok2 := message["height"].(float64)
		if !ok1 || !ok2 {
			return fmt.Errorf("неверный формат размеров вьюпорта")
		}
		a.port.SetViewport(width, height)
		return nil
	}

	a.handlers[MessageTypeText] = func(conn *SafeWriter, message map[string]interface{}) error {
		text, ok := message["text"].(string)
		if !ok {
			return fmt.Errorf("неверный формат текста")
		}

		created, err := a.port.TypeText(text)
		if err != nil {
			if errors.Is(err, service.ErrInputTooLong) {
				a.sendError(conn, "слишком длинный текст")
				return nil
			}
			return err
		}

		// Рассылаем всем клиентам ровно те буквы, которые создал этот
		// вызов - снимок сцены мог уже измениться другим клиентом
		for _, l := range created {
			a.broadcast(NewCreateMessage(l))
		}

		clientTime, _ := message["client_time"].(float64)
		return conn.SendJSON(NewAckMessage(MessageTypeText, clientTime))
	}

	a.handlers[MessageTypeStyle] = func(conn *SafeWriter, message map[string]interface{}) error {
		style, ok := message["style"].(string)
		if !ok {
			return fmt.Errorf("неверный формат стиля")
		}
		if err := a.port.SetAnimationStyle(style); err != nil {
			a.sendError(conn, err.Error())
			return nil
		}
		clientTime, _ := message["client_time"].(float64)
		return conn.SendJSON(NewAckMessage(MessageTypeStyle, clientTime))
	}

	a.handlers[MessageTypeCommit] = func(conn *SafeWriter, message map[string]interface{}) error {
		if a.port.Commit() {
			// Залп конфетти ушел - сообщаем всем клиентам
			a.broadcast(NewConfettiMessage(len(a.port.ConfettiSnapshot())))
		}
		clientTime, _ := message["client_time"].(float64)
		return conn.SendJSON(NewAckMessage(MessageTypeCommit, clientTime))
	}
}

// HandleWS обрабатывает WebSocket соединения
func (a *WSAdapter) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Printf("[WSAdapter] Ошибка при установке WebSocket соединения: %v", err)
		return
	}

	safeWriter := NewSafeWriter(conn)

	a.clientsMu.Lock()
	a.clients[safeWriter] = true
	a.clientsMu.Unlock()

	defer func() {
		a.clientsMu.Lock()
		delete(a.clients, safeWriter)
		a.clientsMu.Unlock()
		conn.Close()
	}()

	a.logger.Printf("[WSAdapter] Новое соединение от %s", conn.RemoteAddr())

	if err := safeWriter.SendJSON(NewInfoMessage("connected to x-letters server")); err != nil {
		a.logger.Printf("[WSAdapter] Ошибка отправки приветствия: %v", err)
		return
	}

	// Отправляем новому клиенту доступные стили и существующие буквы
	if err := safeWriter.SendJSON(NewStylesMessage(a.port.Styles())); err != nil {
		a.logger.Printf("[WSAdapter] Ошибка отправки списка стилей: %v", err)
		return
	}
	for _, l := range a.port.Snapshot() {
		if err := safeWriter.SendJSON(NewCreateMessage(l)); err != nil {
			a.logger.Printf("[WSAdapter] Ошибка отправки буквы #%d: %v", l.ID, err)
			return
		}
	}

	// Основной цикл обработки сообщений
	for {
		var message map[string]interface{}
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				a.logger.Printf("[WSAdapter] Ошибка чтения: %v", err)
			}
			break
		}

		messageType, ok := message["type"].(string)
		if !ok {
			a.logger.Printf("[WSAdapter] Получено сообщение без типа: %v", message)
			continue
		}

		handler, ok := a.handlers[messageType]
		if !ok {
			a.logger.Printf("[WSAdapter] Нет обработчика для типа сообщения: %s", messageType)
			continue
		}

		if err := handler(safeWriter, message); err != nil {
			a.logger.Printf("[WSAdapter] Ошибка обработки сообщения %s: %v", messageType, err)
		}
	}

	a.logger.Printf("[WSAdapter] Соединение закрыто: %s", conn.RemoteAddr())
}

// BroadcastUpdate отправляет состояние сцены всем подключенным клиентам.
// Вызывается системой рассылки из игрового цикла.
func (a *WSAdapter) BroadcastUpdate() {
	letters := a.port.Snapshot()
	particles := a.port.ConfettiSnapshot()
	if len(letters) == 0 && len(particles) == 0 {
		return
	}

	a.broadcast(NewUpdateMessage(letters, particles))
}

// broadcast отправляет сообщение всем подключенным клиентам
func (a *WSAdapter) broadcast(message map[string]interface{}) {
	a.clientsMu.Lock()
	defer a.clientsMu.Unlock()

	for client := range a.clients {
		if err := client.SendJSON(message); err != nil {
			a.logger.Printf("[WSAdapter] Ошибка отправки клиенту: %v", err)
		}
	}
}

// sendError отправляет сообщение об ошибке клиенту
func (a *WSAdapter) sendError(conn *SafeWriter, message string) {
	if err := conn.SendJSON(NewErrorMessage(message)); err != nil {
		a.logger.Printf("[WSAdapter] Ошибка при отправке сообщения об ошибке: %v", err)
	}
}
