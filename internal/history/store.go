// Package history persists one record per download run in a local SQLite
// database and serves the most recent runs to the History dialog.
package history

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ytget/youtomp3/internal/model"
)

// Store is a gorm-backed run history
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the history database at path
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newStore(db)
}

// newStore migrates the schema and closes db when that fails
func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&model.RunRecord{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts or replaces a run record
func (s *Store) Record(rec *model.RunRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("history record requires an id")
	}
	return s.db.Save(rec).Error
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(limit int) ([]*model.RunRecord, error) {
	var records []*model.RunRecord
	query := s.db.Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// CountByStatus returns the number of runs with the given outcome
func (s *Store) CountByStatus(status model.RunStatus) (int64, error) {
	var count int64
	err := s.db.Model(&model.RunRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Clear removes every record
func (s *Store) Clear() error {
	return s.db.Where("1 = 1").Delete(&model.RunRecord{}).Error
}

// Close closes the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
