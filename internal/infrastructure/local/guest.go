package local

import (
	"context"
	"strconv"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// GuestItems artículos del alcance invitado (origen de la migración).
func (s *Store) GuestItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return s.ListItems(ctx, entity.GuestScope)
}

// GuestTransactions transacciones del alcance invitado (origen de la migración).
func (s *Store) GuestTransactions(ctx context.Context) ([]*entity.Transaction, error) {
	return s.ListTransactions(ctx, entity.GuestScope)
}

// ClearGuestData borra las claves de datos del invitado (transacciones, perfil, artículos y
// movimientos). Las preferencias (idioma, intro vista) se conservan.
func (s *Store) ClearGuestData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, guestDataKeys...)
}

// SetAuthenticated persiste el indicador de modo de sesión junto al almacén local.
func (s *Store) SetAuthenticated(ctx context.Context, authenticated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.SetMany(ctx, map[string][]byte{
		KeyAuthenticated: []byte(strconv.FormatBool(authenticated)),
	})
}

// IsAuthenticated lee el indicador de modo; ausente = invitado.
func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.kv.Get(ctx, KeyAuthenticated)
	if err != nil || raw == nil {
		return false, err
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, nil
	}
	return v, nil
}
