package ws

import (
	"encoding/json"
	"math"
	"sync"

	"github.com/gorilla/websocket"
)

// SafeWriter обеспечивает потокобезопасную запись в WebSocket
type SafeWriter struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

// NewSafeWriter создает новый экземпляр SafeWriter
func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{
		conn: conn,
	}
}

// WriteJSON потокобезопасно отправляет JSON данные через WebSocket
func (w *SafeWriter) WriteJSON(v interface{}) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	jsonData, err := json.Marshal(v)
	if err != nil {
		// Если сериализация упала из-за NaN значений, обходим
		// структуру и заменяем NaN на 0
		if mapData, ok := v.(map[string]interface{}); ok {
			sanitizeMapValues(mapData)
			jsonData, err = json.Marshal(mapData)
			if err != nil {
				return err
			}
		} else {
			return err
		}
	}

	return w.conn.WriteMessage(websocket.TextMessage, jsonData)
}

// SendJSON отправляет JSON данные через WebSocket (алиас для WriteJSON)
func (w *SafeWriter) SendJSON(v interface{}) error {
	return w.WriteJSON(v)
}

// Close закрывает соединение WebSocket
func (w *SafeWriter) Close() error {
	return w.conn.Close()
}

// sanitizeMapValues рекурсивно обходит map и заменяет NaN значения на 0
func sanitizeMapValues(data map[string]interface{}) {
	for k, v := range data {
		switch val := v.(type) {
		case float64:
			if math.IsNaN(val) {
				data[k] = 0.0
			}
		case map[string]interface{}:
			sanitizeMapValues(val)
		case []interface{}:
			for i, item := range val {
				if itemMap, ok := item.(map[string]interface{}); ok {
					sanitizeMapValues(itemMap)
				} else if itemFloat, ok := item.(float64); ok && math.IsNaN(itemFloat) {
					val[i] = 0.0
				}
			}
		}
	}
}
