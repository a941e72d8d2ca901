package ports

import "context"

// Tipos de evento emitidos hacia los clientes conectados.
const (
	EventModeChanged = "mode_changed"
	EventLowStock    = "low_stock"
)

// Event notificación enviada a los clientes del alcance.
type Event struct {
	Type    string `json:"type"`
	Scope   string `json:"business_id"`
	Payload any    `json:"payload,omitempty"`
}

// Notifier puerto de salida para notificaciones en tiempo real (websocket, mock).
// Notify no debe bloquear al caso de uso: la entrega es de mejor esfuerzo.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Notify envía el evento si hay notificador; nil = no-op.
func Notify(ctx context.Context, n Notifier, event Event) {
	if n == nil {
		return
	}
	n.Notify(ctx, event)
}
