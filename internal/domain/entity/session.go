package entity

// GuestScope es el alcance reservado para el uso sin registro.
const GuestScope = "guest"

// Mode backend de almacenamiento activo para la sesión.
type Mode string

const (
	ModeLocal  Mode = "local"  // invitado: almacén clave-valor efímero
	ModeRemote Mode = "remote" // autenticado: almacén relacional persistente
)

// Session identifica el alcance y el backend de cada llamada a los servicios.
// Se pasa explícitamente; no existe un indicador global.
type Session struct {
	Scope string
	Mode  Mode
}

// GuestSession sesión local del invitado.
func GuestSession() Session {
	return Session{Scope: GuestScope, Mode: ModeLocal}
}

// BusinessSession sesión remota de un negocio autenticado.
func BusinessSession(businessID string) Session {
	return Session{Scope: businessID, Mode: ModeRemote}
}

// IsGuest indica si la sesión opera sobre el almacén local.
func (s Session) IsGuest() bool {
	return s.Mode == ModeLocal
}
