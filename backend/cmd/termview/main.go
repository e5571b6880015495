package main

import (
	"encoding/json"
	"flag"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"

	"x-letters/backend/internal/camera"
)

// Размеры псевдопикселя: знакоместо терминала шире в высоту, чем в
// ширину, поэтому горизонталь и вертикаль масштабируются по-разному
const (
	cellPixelW = 10.0
	cellPixelH = 20.0
)

// letterView - состояние одной буквы, как его присылает сервер
type letterView struct {
	ID     int     `json:"id"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Moving bool    `json:"moving"`
}

// particleView - одна частица конфетти
type particleView struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Color string  `json:"color"`
	TTL   float64 `json:"ttl"`
}

// sceneState хранит последнее полученное состояние сцены
type sceneState struct {
	mu       sync.RWMutex
	letters  []letterView
	confetti []particleView
	status   string
}

func (s *sceneState) setLetters(letters []letterView, confetti []particleView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.letters = letters
	s.confetti = confetti
}

func (s *sceneState) setStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *sceneState) snapshot() ([]letterView, []particleView, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	letters := make([]letterView, len(s.letters))
	copy(letters, s.letters)
	confetti := make([]particleView, len(s.confetti))
	copy(confetti, s.confetti)
	return letters, confetti, s.status
}

// viewer - терминальный клиент скринсейвера
type viewer struct {
	screen tcell.Screen
	conn   *websocket.Conn
	cam    *camera.Camera
	state  *sceneState

	writeMu sync.Mutex

	viewportW float64
	viewportH float64
}

func (v *viewer) send(message map[string]interface{}) {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()
	if err := v.conn.WriteJSON(message); err != nil {
		v.state.setStatus("ошибка отправки: " + err.Error())
	}
}

// sendViewport сообщает серверу размеры вьюпорта в псевдопикселях
func (v *viewer) sendViewport() {
	cols, rows := v.screen.Size()
	v.viewportW = float64(cols) * cellPixelW
	v.viewportH = float64(rows) * cellPixelH

	v.send(map[string]interface{}{
		"type":   "viewport",
		"width":  v.viewportW,
		"height": v.viewportH,
	})
}

// readLoop читает сообщения сервера и будит экран на перерисовку
func (v *viewer) readLoop() {
	for {
		var raw json.RawMessage
		if err := v.conn.ReadJSON(&raw); err != nil {
			v.state.setStatus("соединение потеряно: " + err.Error())
			v.screen.PostEvent(tcell.NewEventInterrupt(nil))
			return
		}

		var envelope struct {
			Type     string          `json:"type"`
			Letters  []letterView    `json:"letters"`
			Confetti []particleView  `json:"confetti"`
			Message  string          `json:"message"`
			Styles   json.RawMessage `json:"styles"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			continue
		}

		switch envelope.Type {
		case "update":
			v.state.setLetters(envelope.Letters, envelope.Confetti)
		case "confetti":
			v.state.setStatus("конфетти!")
		case "error":
			v.state.setStatus("ошибка: " + envelope.Message)
		case "info":
			v.state.setStatus(envelope.Message)
		}

		v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// draw отрисовывает текущее состояние сцены
func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()

	letters, confetti, status := v.state.snapshot()
	project := v.cam.ProjectFunc(v.viewportW, v.viewportH)

	confettiStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, p := range confetti {
		px, py := project(mgl64.Vec3{p.X, p.Y, p.Z})
		col := int(px / cellPixelW)
		row := int(py / cellPixelH)
		if col >= 0 && col < cols && row >= 0 && row < rows {
			v.screen.SetContent(col, row, '*', nil, confettiStyle)
		}
	}

	flying := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	locked := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for _, l := range letters {
		px, py := project(mgl64.Vec3{l.X, l.Y, l.Z})
		col := int(px / cellPixelW)
		row := int(py / cellPixelH)
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}

		style := locked
		if l.Moving {
			style = flying
		}
		for _, r := range l.Text {
			v.screen.SetContent(col, row, r, nil, style)
			break
		}
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range status {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows-1, r, nil, statusStyle)
	}

	v.screen.Show()
}

func clientTime() float64 {
	return float64(time.Now().UnixNano()) / 1e6
}

func main() {
	serverURL := flag.String("server", "ws://localhost:8080/ws", "URL WebSocket сервера")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("[TermView] Ошибка создания экрана: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("[TermView] Ошибка инициализации экрана: %v", err)
	}
	defer screen.Fini()

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(*serverURL, nil)
	if err != nil {
		screen.Fini()
		log.Fatalf("[TermView] Ошибка подключения к %s: %v", *serverURL, err)
	}
	defer conn.Close()

	v := &viewer{
		screen: screen,
		conn:   conn,
		cam:    camera.New(),
		state: &sceneState{
			status: "наберите текст, Enter - зафиксировать, 1/2/3 - стиль, Esc - выход",
		},
	}

	v.sendViewport()
	go v.readLoop()

	styleKeys := map[rune]string{'1': "tumble", '2': "spin", '3': "sway"}

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			v.sendViewport()
			v.draw()

		case *tcell.EventInterrupt:
			v.draw()

		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return

			case tcell.KeyEnter:
				v.send(map[string]interface{}{
					"type":        "commit",
					"client_time": clientTime(),
				})

			case tcell.KeyRune:
				r := ev.Rune()
				if style, ok := styleKeys[r]; ok {
					v.send(map[string]interface{}{
						"type":        "set_style",
						"style":       style,
						"client_time": clientTime(),
					})
					v.state.setStatus("стиль: " + style)
					v.draw()
					break
				}
				v.send(map[string]interface{}{
					"type":        "type_text",
					"text":        string(r),
					"client_time": clientTime(),
				})
			}
		}
	}
}
