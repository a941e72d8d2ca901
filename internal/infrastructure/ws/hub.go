package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

var _ ports.Notifier = (*Hub)(nil)

// Client conexión websocket suscrita a los eventos de un alcance.
type Client struct {
	Conn  *websocket.Conn
	Scope string
}

type message struct {
	scope   string
	payload []byte
}

// Hub difunde eventos JSON a las conexiones de cada alcance.
type Hub struct {
	clients    map[*websocket.Conn]string
	Register   chan Client
	Unregister chan *websocket.Conn
	broadcast  chan message
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub; buffer es la capacidad de la cola de difusión.
func NewHub(buffer int, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[*websocket.Conn]string),
		Register:   make(chan Client),
		Unregister: make(chan *websocket.Conn),
		broadcast:  make(chan message, buffer),
		log:        log.Component("ws"),
	}
}

// Run atiende registros y difusiones hasta que ctx se cancela.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case c := <-h.Register:
			h.mutex.Lock()
			h.clients[c.Conn] = c.Scope
			h.mutex.Unlock()
			h.log.Debug().Str("scope", c.Scope).Msg("cliente ws conectado")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for conn, scope := range h.clients {
				if scope != msg.scope {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Notify implementa ports.Notifier. Nunca bloquea: con la cola llena el evento se descarta.
func (h *Hub) Notify(_ context.Context, event ports.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("type", event.Type).Msg("no se pudo serializar el evento")
		return
	}
	select {
	case h.broadcast <- message{scope: event.Scope, payload: payload}:
	default:
		h.log.Warn().Str("type", event.Type).Str("scope", event.Scope).Msg("cola ws llena, evento descartado")
	}
}

// Pending eventos en cola sin difundir.
func (h *Hub) Pending() int {
	return len(h.broadcast)
}

// Clients conexiones registradas.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
