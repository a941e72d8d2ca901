package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/internal/infrastructure/local"
	"github.com/jhoicas/ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// Stores almacenes abiertos según la configuración. Remote es nil si no hay BD configurada.
type Stores struct {
	Local  *local.Store
	Remote *postgres.LedgerStore

	sqlite *local.SQLiteKV
	pool   *pgxpool.Pool
}

// OpenStores abre el almacén local (SQLite o memoria) y, si hay BD configurada, el remoto.
func OpenStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	s := &Stores{}
	var kv local.KeyValue
	if cfg.Local.InMemory() {
		kv = local.NewMemoryKV()
		log.Info().Msg("almacén local en memoria")
	} else {
		sqliteKV, err := local.OpenSQLiteKV(cfg.Local.StorePath)
		if err != nil {
			return nil, err
		}
		s.sqlite = sqliteKV
		kv = sqliteKV
		log.Info().Str("path", cfg.Local.StorePath).Msg("almacén local en SQLite")
	}
	s.Local = local.NewStore(kv)

	if !cfg.DB.Enabled() {
		log.Warn().Msg("sin base de datos configurada: solo modo invitado")
		return s, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	s.pool = pool
	if cfg.DB.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			s.Close()
			return nil, err
		}
		log.Info().Msg("esquema remoto aplicado")
	}
	s.Remote = postgres.NewLedgerStore(pool)
	return s, nil
}

// Resolver selector de almacén por sesión.
func (s *Stores) Resolver() *ledger.Resolver {
	var remote repository.LedgerStore
	if s.Remote != nil {
		remote = s.Remote
	}
	return ledger.NewResolver(s.Local, remote)
}

// Close libera conexiones y archivos.
func (s *Stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.sqlite != nil {
		_ = s.sqlite.Close()
	}
}
