package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Bot - безголовый клиент скринсейвера: подключается к серверу, набирает
// текст, выбирает стиль, фиксирует строку и собирает статистику
// полученных сообщений
type Bot struct {
	ID          string
	ServerURL   string
	Conn        *websocket.Conn
	Running     bool
	Text        string
	Style       string
	CommitAfter time.Duration
	Duration    time.Duration

	mu      sync.RWMutex
	writeMu sync.Mutex // Мьютекс для синхронизации записи в WebSocket

	Stats BotStats
}

// BotStats содержит статистику работы бота
type BotStats struct {
	mu             sync.RWMutex
	CommandsSent   int
	Updates        int
	Creates        int
	ConfettiEvents int
	Errors         int
	StartTime      time.Time
}

// NewBot создает нового бота
func NewBot(id, serverURL, text, style string, commitAfter, duration time.Duration) *Bot {
	return &Bot{
		ID:          id,
		ServerURL:   serverURL,
		Text:        text,
		Style:       style,
		CommitAfter: commitAfter,
		Duration:    duration,
		Stats: BotStats{
			StartTime: time.Now(),
		},
	}
}

// Connect подключается к серверу
func (b *Bot) Connect() error {
	u, err := url.Parse(b.ServerURL)
	if err != nil {
		return fmt.Errorf("неверный URL: %v", err)
	}

	log.Printf("[Bot %s] Подключение к %s", b.ID, u.String())

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}

	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %v", err)
	}

	b.Conn = conn
	b.Running = true

	log.Printf("[Bot %s] Успешно подключен", b.ID)
	return nil
}

// Disconnect отключается от сервера
func (b *Bot) Disconnect() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Conn != nil {
		b.Running = false
		b.Conn.Close()
		b.Conn = nil
	}
}

// send потокобезопасно отправляет JSON сообщение
func (b *Bot) send(message map[string]interface{}) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if err := b.Conn.WriteJSON(message); err != nil {
		b.Stats.mu.Lock()
		b.Stats.Errors++
		b.Stats.mu.Unlock()
		return err
	}

	b.Stats.mu.Lock()
	b.Stats.CommandsSent++
	b.Stats.mu.Unlock()
	return nil
}

func clientTime() float64 {
	return float64(time.Now().UnixNano()) / 1e6
}

// Run выполняет сценарий бота: вьюпорт, текст, стиль, фиксация
func (b *Bot) Run() {
	go b.readLoop()

	// Сообщаем размеры вьюпорта
	if err := b.send(map[string]interface{}{
		"type":   "viewport",
		"width":  1280.0,
		"height": 720.0,
	}); err != nil {
		log.Printf("[Bot %s] Ошибка отправки вьюпорта: %v", b.ID, err)
		return
	}

	// Набираем текст
	if err := b.send(map[string]interface{}{
		"type":        "type_text",
		"text":        b.Text,
		"client_time": clientTime(),
	}); err != nil {
		log.Printf("[Bot %s] Ошибка отправки текста: %v", b.ID, err)
		return
	}

	// Выбираем стиль вращения
	if b.Style != "" {
		if err := b.send(map[string]interface{}{
			"type":        "set_style",
			"style":       b.Style,
			"client_time": clientTime(),
		}); err != nil {
			log.Printf("[Bot %s] Ошибка выбора стиля: %v", b.ID, err)
			return
		}
	}

	// Периодические пинги до момента фиксации
	pingTicker := time.NewTicker(2 * time.Second)
	defer pingTicker.Stop()

	commitTimer := time.NewTimer(b.CommitAfter)
	defer commitTimer.Stop()

	endTimer := time.NewTimer(b.Duration)
	defer endTimer.Stop()

	for {
		select {
		case <-pingTicker.C:
			if err := b.send(map[string]interface{}{
				"type":        "ping",
				"client_time": clientTime(),
			}); err != nil {
				log.Printf("[Bot %s] Ошибка пинга: %v", b.ID, err)
				return
			}

		case <-commitTimer.C:
			log.Printf("[Bot %s] Фиксация строки", b.ID)
			if err := b.send(map[string]interface{}{
				"type":        "commit",
				"client_time": clientTime(),
			}); err != nil {
				log.Printf("[Bot %s] Ошибка фиксации: %v", b.ID, err)
				return
			}

		case <-endTimer.C:
			log.Printf("[Bot %s] Сценарий завершен", b.ID)
			return
		}
	}
}

// readLoop читает входящие сообщения и считает их по типам
func (b *Bot) readLoop() {
	for {
		b.mu.RLock()
		conn := b.Conn
		running := b.Running
		b.mu.RUnlock()

		if !running || conn == nil {
			return
		}

		var message map[string]interface{}
		if err := conn.ReadJSON(&message); err != nil {
			b.mu.RLock()
			stillRunning := b.Running
			b.mu.RUnlock()
			if stillRunning {
				log.Printf("[Bot %s] Ошибка чтения: %v", b.ID, err)
			}
			return
		}

		messageType, _ := message["type"].(string)

		b.Stats.mu.Lock()
		switch messageType {
		case "update":
			b.Stats.Updates++
		case "create":
			b.Stats.Creates++
		case "confetti":
			b.Stats.ConfettiEvents++
			log.Printf("[Bot %s] Получено событие конфетти", b.ID)
		case "error":
			b.Stats.Errors++
			log.Printf("[Bot %s] Сервер вернул ошибку: %v", b.ID, message["message"])
		}
		b.Stats.mu.Unlock()
	}
}

// PrintStats выводит итоговую статистику
func (b *Bot) PrintStats() {
	b.Stats.mu.RLock()
	defer b.Stats.mu.RUnlock()

	uptime := time.Since(b.Stats.StartTime)
	log.Printf("[Bot %s] Итого за %v: команд отправлено %d, обновлений %d, созданий %d, конфетти %d, ошибок %d",
		b.ID, uptime.Round(time.Second), b.Stats.CommandsSent, b.Stats.Updates,
		b.Stats.Creates, b.Stats.ConfettiEvents, b.Stats.Errors)
}

func main() {
	serverURL := flag.String("server", "ws://localhost:8080/ws", "URL WebSocket сервера")
	text := flag.String("text", "GOPHER", "текст для набора")
	style := flag.String("style", "tumble", "стиль вращения букв")
	commitAfter := flag.Duration("commit-after", 10*time.Second, "через сколько зафиксировать строку")
	duration := flag.Duration("duration", 20*time.Second, "общая длительность сценария")
	flag.Parse()

	bot := NewBot("1", *serverURL, *text, *style, *commitAfter, *duration)

	if err := bot.Connect(); err != nil {
		log.Fatalf("[Bot] %v", err)
	}
	defer bot.Disconnect()

	// Корректное завершение по сигналу
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go func() {
		bot.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Printf("[Bot] Прерывание, завершаем работу")
	}

	bot.PrintStats()
}
