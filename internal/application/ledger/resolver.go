package ledger

import (
	"fmt"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// Resolver elige el almacén según el modo de la sesión.
// remote puede ser nil cuando no hay base de datos configurada.
type Resolver struct {
	local  repository.LedgerStore
	remote repository.LedgerStore
}

// NewResolver construye el selector de almacenes.
func NewResolver(local, remote repository.LedgerStore) *Resolver {
	return &Resolver{local: local, remote: remote}
}

// For devuelve el almacén de la sesión. Una sesión local siempre usa el alcance invitado y una
// remota nunca lo usa.
func (r *Resolver) For(session entity.Session) (repository.LedgerStore, error) {
	switch session.Mode {
	case entity.ModeLocal:
		if session.Scope != entity.GuestScope {
			return nil, fmt.Errorf("%w: la sesión local usa el alcance invitado", domain.ErrInvalidInput)
		}
		if r.local == nil {
			return nil, domain.ErrStoreUnavailable
		}
		return r.local, nil
	case entity.ModeRemote:
		if session.Scope == "" || session.Scope == entity.GuestScope {
			return nil, fmt.Errorf("%w: la sesión remota requiere un negocio", domain.ErrInvalidInput)
		}
		if r.remote == nil {
			return nil, domain.ErrStoreUnavailable
		}
		return r.remote, nil
	}
	return nil, fmt.Errorf("%w: modo de sesión %q", domain.ErrInvalidInput, session.Mode)
}

// Local almacén del invitado (consultas de consistencia, migración).
func (r *Resolver) Local() repository.LedgerStore { return r.local }
