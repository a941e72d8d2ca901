package migration_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/ledger-api/internal/application/migration"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/infrastructure/local"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTarget guarda por ID, como el upsert del almacén remoto.
type fakeTarget struct {
	items        map[string]*entity.InventoryItem
	transactions map[string]*entity.Transaction
	calls        int
	failOnCall   int // 0 = nunca falla
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		items:        map[string]*entity.InventoryItem{},
		transactions: map[string]*entity.Transaction{},
	}
}

func (f *fakeTarget) hit() error {
	f.calls++
	if f.failOnCall > 0 && f.calls == f.failOnCall {
		return errors.New("conexión perdida")
	}
	return nil
}

func (f *fakeTarget) UpsertItems(_ context.Context, items []*entity.InventoryItem) error {
	if err := f.hit(); err != nil {
		return err
	}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return nil
}

func (f *fakeTarget) UpsertTransactions(_ context.Context, txs []*entity.Transaction) error {
	if err := f.hit(); err != nil {
		return err
	}
	for _, tx := range txs {
		f.transactions[tx.ID] = tx
	}
	return nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *recordingNotifier) Notify(_ context.Context, e ports.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func seedGuest(t *testing.T, store *local.Store, items, txs int) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < items; i++ {
		require.NoError(t, store.CreateItem(ctx, &entity.InventoryItem{
			ID:       fmt.Sprintf("item-%d", i),
			Scope:    entity.GuestScope,
			Name:     fmt.Sprintf("Item %d", i),
			Quantity: decimal.NewFromInt(int64(10 + i)),
			Baseline: decimal.NewFromInt(int64(10 + i)),
			Unit:     "kg",
		}))
	}
	for i := 0; i < txs; i++ {
		require.NoError(t, store.CreateTransaction(ctx, &entity.Transaction{
			ID:            fmt.Sprintf("tx-%d", i),
			Scope:         entity.GuestScope,
			Kind:          entity.TransactionKindExpense,
			Amount:        decimal.NewFromInt(100),
			PaymentMethod: entity.PaymentMethod("credit"),
			Category:      entity.ExpenseCategory("arriendo"),
			Date:          entity.NewDate(2025, time.June, 1+i),
			CreatedAt:     now,
		}))
	}
}

func TestMigrateGuestData_MovesEverythingAndClearsGuest(t *testing.T) {
	ctx := context.Background()
	kv := local.NewMemoryKV()
	store := local.NewStore(kv)
	seedGuest(t, store, 3, 2)
	require.NoError(t, kv.SetMany(ctx, map[string][]byte{local.KeyLanguage: []byte("es")}))

	target := newFakeTarget()
	notifier := &recordingNotifier{}
	uc := migration.NewGuestMigrationUseCase(store, target, 2, notifier, nil)

	report, err := uc.MigrateGuestData(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Items)
	assert.Equal(t, 2, report.Transactions)
	assert.Equal(t, 3, report.Batches, "2 lotes de artículos + 1 de transacciones")

	require.Len(t, target.items, 3)
	assert.Equal(t, "biz-1", target.items["item-0"].Scope)
	assert.Equal(t, "12", target.items["item-2"].Quantity.String())

	tx := target.transactions["tx-0"]
	require.NotNil(t, tx)
	assert.Equal(t, "biz-1", tx.Scope)
	assert.Equal(t, entity.PaymentCard, tx.PaymentMethod)
	assert.Equal(t, entity.CategoryRent, tx.Category)

	items, err := store.GuestItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	txs, err := store.GuestTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	lang, err := kv.Get(ctx, local.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "es", string(lang), "las preferencias sobreviven")

	authenticated, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, authenticated)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, ports.EventModeChanged, notifier.events[0].Type)
	assert.Equal(t, "biz-1", notifier.events[0].Scope)
}

func TestMigrateGuestData_FailedBatchKeepsLocalData(t *testing.T) {
	ctx := context.Background()
	store := local.NewStore(local.NewMemoryKV())
	seedGuest(t, store, 3, 2)

	target := newFakeTarget()
	target.failOnCall = 2
	notifier := &recordingNotifier{}
	uc := migration.NewGuestMigrationUseCase(store, target, 2, notifier, nil)

	_, err := uc.MigrateGuestData(ctx, "biz-1")
	require.Error(t, err)

	items, err := store.GuestItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	txs, err := store.GuestTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	authenticated, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)
	assert.Empty(t, notifier.events)

	// reintento: los upserts por ID no duplican lo ya escrito
	target.failOnCall = 0
	report, err := uc.MigrateGuestData(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Items)
	assert.Len(t, target.items, 3)
	assert.Len(t, target.transactions, 2)
}

func TestMigrateGuestData_RunTwiceDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	store := local.NewStore(local.NewMemoryKV())
	target := newFakeTarget()
	uc := migration.NewGuestMigrationUseCase(store, target, 0, nil, nil)

	seedGuest(t, store, 2, 2)
	_, err := uc.MigrateGuestData(ctx, "biz-1")
	require.NoError(t, err)

	// los mismos registros reaparecen en el dispositivo
	seedGuest(t, store, 2, 2)
	_, err = uc.MigrateGuestData(ctx, "biz-1")
	require.NoError(t, err)

	assert.Len(t, target.items, 2)
	assert.Len(t, target.transactions, 2)
}

func TestMigrateGuestData_NothingToMigrate(t *testing.T) {
	ctx := context.Background()
	kv := local.NewMemoryKV()
	store := local.NewStore(kv)
	require.NoError(t, kv.SetMany(ctx, map[string][]byte{local.KeyIntroSeen: []byte("true")}))

	target := newFakeTarget()
	notifier := &recordingNotifier{}
	uc := migration.NewGuestMigrationUseCase(store, target, 10, notifier, nil)

	report, err := uc.MigrateGuestData(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, migration.MigrationReport{}, *report)
	assert.Zero(t, target.calls)
	assert.Empty(t, notifier.events)
	assert.Equal(t, []string{local.KeyIntroSeen}, kv.Keys())
}

func TestMigrateGuestData_InvalidTarget(t *testing.T) {
	ctx := context.Background()
	store := local.NewStore(local.NewMemoryKV())
	seedGuest(t, store, 1, 0)

	uc := migration.NewGuestMigrationUseCase(store, newFakeTarget(), 10, nil, nil)
	_, err := uc.MigrateGuestData(ctx, entity.GuestScope)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.MigrateGuestData(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noRemote := migration.NewGuestMigrationUseCase(store, nil, 10, nil, nil)
	_, err = noRemote.MigrateGuestData(ctx, "biz-1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
