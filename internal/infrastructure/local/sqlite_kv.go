package local

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// kvEntry fila de la tabla local_kv.
type kvEntry struct {
	Key       string `gorm:"column:kv_key;primaryKey;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

func (kvEntry) TableName() string { return "local_kv" }

// SQLiteKV persiste el almacén clave-valor en un archivo SQLite vía GORM.
type SQLiteKV struct {
	db *gorm.DB
}

// OpenSQLiteKV abre (o crea) el archivo y migra la tabla local_kv.
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir almacén local: %w", err)
	}
	if path == ":memory:" {
		// cada conexión en memoria es una base distinta
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("abrir almacén local: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrar esquema local: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var e kvEntry
	err := s.db.WithContext(ctx).First(&e, "kv_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer clave %q: %w", key, err)
	}
	return e.Value, nil
}

// SetMany escribe todas las claves dentro de una transacción SQLite.
func (s *SQLiteKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range entries {
			e := kvEntry{Key: k, Value: v, UpdatedAt: now}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "kv_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&e).Error
			if err != nil {
				return fmt.Errorf("escribir clave %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLiteKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("kv_key IN ?", keys).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("borrar claves: %w", err)
	}
	return nil
}

// Close libera la conexión subyacente.
func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
