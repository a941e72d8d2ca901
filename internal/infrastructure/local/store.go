package local

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.LedgerStore = (*Store)(nil)

// Store almacén local del modo invitado sobre un KeyValue.
// Cada mutación reescribe el arreglo completo de la clave. El mutex convierte cada
// lectura-modificación-escritura compuesta en una sección crítica: nada se intercala
// entre la lectura y la escritura.
type Store struct {
	mu sync.Mutex
	kv KeyValue
}

// NewStore construye el almacén sobre kv.
func NewStore(kv KeyValue) *Store {
	return &Store{kv: kv}
}

// Mode implementa repository.LedgerStore.
func (s *Store) Mode() entity.Mode { return entity.ModeLocal }

func readArray[T any](ctx context.Context, kv KeyValue, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decodificar %q: %w", key, err)
	}
	return out, nil
}

func encodeArray[T any](key string, list []T) ([]byte, error) {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("codificar %q: %w", key, err)
	}
	return raw, nil
}

// writeArrays codifica y escribe varias colecciones en una sola operación del KeyValue.
func (s *Store) writeArrays(ctx context.Context, items []itemRecord, movements []movementRecord, txs []transactionRecord) error {
	entries := make(map[string][]byte, 3)
	if items != nil {
		raw, err := encodeArray(KeyInventoryItems, items)
		if err != nil {
			return err
		}
		entries[KeyInventoryItems] = raw
	}
	if movements != nil {
		raw, err := encodeArray(KeyInventoryMovements, movements)
		if err != nil {
			return err
		}
		entries[KeyInventoryMovements] = raw
	}
	if txs != nil {
		raw, err := encodeArray(KeyTransactions, txs)
		if err != nil {
			return err
		}
		entries[KeyTransactions] = raw
	}
	if len(entries) == 0 {
		return nil
	}
	return s.kv.SetMany(ctx, entries)
}

// ─── Artículos ───────────────────────────────────────────────────────────────

// ListItems artículos del alcance ordenados por nombre.
func (s *Store) ListItems(ctx context.Context, scope string) ([]*entity.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[itemRecord](ctx, s.kv, KeyInventoryItems)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.InventoryItem, 0, len(records))
	for _, r := range records {
		if r.BusinessID == scope {
			list = append(list, r.toItem())
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (s *Store) GetItem(ctx context.Context, scope, id string) (*entity.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[itemRecord](ctx, s.kv, KeyInventoryItems)
	if err != nil {
		return nil, err
	}
	if i := indexItem(records, scope, id); i >= 0 {
		return records[i].toItem(), nil
	}
	return nil, nil
}

func (s *Store) CreateItem(ctx context.Context, item *entity.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[itemRecord](ctx, s.kv, KeyInventoryItems)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID == item.ID {
			return domain.ErrDuplicate
		}
	}
	records = append(records, toItemRecord(item))
	return s.writeArrays(ctx, records, nil, nil)
}

// DeleteItem elimina el artículo y descarta sus movimientos.
func (s *Store) DeleteItem(ctx context.Context, scope, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := readArray[itemRecord](ctx, s.kv, KeyInventoryItems)
	if err != nil {
		return err
	}
	movements, err := readArray[movementRecord](ctx, s.kv, KeyInventoryMovements)
	if err != nil {
		return err
	}
	i := indexItem(items, scope, id)
	if i < 0 {
		return nil
	}
	items = append(items[:i], items[i+1:]...)
	keep := make([]movementRecord, 0, len(movements))
	for _, m := range movements {
		if m.ItemID != id {
			keep = append(keep, m)
		}
	}
	return s.writeArrays(ctx, items, keep, nil)
}

func indexItem(records []itemRecord, scope, id string) int {
	for i, r := range records {
		if r.ID == id && r.BusinessID == scope {
			return i
		}
	}
	return -1
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

// AppendMovement anexa el movimiento y aplica su delta a la cantidad del artículo
// en la misma escritura.
func (s *Store) AppendMovement(ctx context.Context, movement *entity.InventoryMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := readArray[itemRecord](ctx, s.kv, KeyInventoryItems)
	if err != nil {
		return err
	}
	movements, err := readArray[movementRecord](ctx, s.kv, KeyInventoryMovements)
	if err != nil {
		return err
	}
	i := indexItem(items, movement.Scope, movement.ItemID)
	if i < 0 {
		return domain.ErrNotFound
	}
	applyDelta(&items[i], movement)
	movements = append(movements, toMovementRecord(movement))
	return s.writeArrays(ctx, items, movements, nil)
}

func applyDelta(item *itemRecord, m *entity.InventoryMovement) {
	item.Quantity = item.Quantity.Add(m.QuantityDelta)
	item.UpdatedAt = m.CreatedAt
}

// ListMovementsByItem movimientos del artículo, más recientes primero.
func (s *Store) ListMovementsByItem(ctx context.Context, scope, itemID string, limit int) ([]*entity.InventoryMovement, error) {
	return s.filterMovements(ctx, limit, func(m movementRecord) bool {
		return m.BusinessID == scope && m.ItemID == itemID
	})
}

func (s *Store) ListMovementsByKind(ctx context.Context, scope string, kind entity.MovementKind) ([]*entity.InventoryMovement, error) {
	return s.filterMovements(ctx, 0, func(m movementRecord) bool {
		return m.BusinessID == scope && m.Type == string(kind)
	})
}

func (s *Store) ListMovementsByTransaction(ctx context.Context, scope, transactionID string) ([]*entity.InventoryMovement, error) {
	if transactionID == "" {
		return nil, nil
	}
	return s.filterMovements(ctx, 0, func(m movementRecord) bool {
		return m.BusinessID == scope && m.TransactionID == transactionID
	})
}

// filterMovements recorre el registro desde el final (orden de anexado inverso) y ordena de forma
// estable por fecha de creación descendente.
func (s *Store) filterMovements(ctx context.Context, limit int, keep func(movementRecord) bool) ([]*entity.InventoryMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[movementRecord](ctx, s.kv, KeyInventoryMovements)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.InventoryMovement, 0)
	for i := len(records) - 1; i >= 0; i-- {
		if keep(records[i]) {
			list = append(list, records[i].toMovement())
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// AllMovements registro completo del alcance en orden de anexado (verificación de consistencia).
func (s *Store) AllMovements(ctx context.Context, scope string) ([]*entity.InventoryMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[movementRecord](ctx, s.kv, KeyInventoryMovements)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.InventoryMovement, 0, len(records))
	for _, r := range records {
		if r.BusinessID == scope {
			list = append(list, r.toMovement())
		}
	}
	return list, nil
}

// ─── Transacciones ───────────────────────────────────────────────────────────

func (s *Store) CreateTransaction(ctx context.Context, tx *entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[transactionRecord](ctx, s.kv, KeyTransactions)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID == tx.ID {
			return domain.ErrDuplicate
		}
	}
	records = append(records, toTransactionRecord(tx))
	return s.writeArrays(ctx, nil, nil, records)
}

func (s *Store) GetTransaction(ctx context.Context, scope, id string) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[transactionRecord](ctx, s.kv, KeyTransactions)
	if err != nil {
		return nil, err
	}
	if i := indexTransaction(records, scope, id); i >= 0 {
		return records[i].toTransaction(), nil
	}
	return nil, nil
}

// ListTransactions transacciones del alcance, fecha más reciente primero.
func (s *Store) ListTransactions(ctx context.Context, scope string) ([]*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[transactionRecord](ctx, s.kv, KeyTransactions)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Transaction, 0, len(records))
	for _, r := range records {
		if r.BusinessID == scope {
			list = append(list, r.toTransaction())
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Time().Equal(list[j].Date.Time()) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := readArray[transactionRecord](ctx, s.kv, KeyTransactions)
	if err != nil {
		return err
	}
	i := indexTransaction(records, tx.Scope, tx.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	records[i] = toTransactionRecord(tx)
	return s.writeArrays(ctx, nil, nil, records)
}

// ReverseAndDeleteTransaction anexa las compensaciones (aplicando su delta a cada artículo) y elimina
// la transacción, todo en una sola escritura del KeyValue.
func (s *Store) ReverseAndDeleteTransaction(ctx context.Context, scope, transactionID string, compensations []*entity.InventoryMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, err := readArray[transactionRecord](ctx, s.kv, KeyTransactions)
	if err != nil {
		return err
	}
	ti := indexTransaction(txs, scope, transactionID)
	if ti < 0 {
		return domain.ErrNotFound
	}
	txs = append(txs[:ti], txs[ti+1:]...)
	if len(compensations) == 0 {
		return s.writeArrays(ctx, nil, nil, txs)
	}

	items, err := readArray[itemRecord](ctx, s.kv, KeyInventoryItems)
	if err != nil {
		return err
	}
	movements, err := readArray[movementRecord](ctx, s.kv, KeyInventoryMovements)
	if err != nil {
		return err
	}
	for _, c := range compensations {
		i := indexItem(items, c.Scope, c.ItemID)
		if i < 0 {
			// artículo eliminado junto con sus movimientos: no hay nada que compensar
			continue
		}
		applyDelta(&items[i], c)
		movements = append(movements, toMovementRecord(c))
	}
	return s.writeArrays(ctx, items, movements, txs)
}

func indexTransaction(records []transactionRecord, scope, id string) int {
	for i, r := range records {
		if r.ID == id && r.BusinessID == scope {
			return i
		}
	}
	return -1
}
