// Package catalog provides a GORM-based SQLite store of ingested API
// records. The vector store carries only {api_name, type} metadata;
// full records are reconstructed from here when a match comes back.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/asteroid-belt/autospec/internal/models"
)

// Catalog wraps the GORM database connection.
type Catalog struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*Catalog, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling with the
	// pure-Go SQLite driver.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &Catalog{DB: db, path: cfg.Path}

	if err := wrapped.AutoMigrate(&models.CatalogEntry{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return wrapped, nil
}

// Upsert stores an API record, overwriting any existing record with
// the same name. Records are otherwise immutable; this is the only
// write path besides Clear.
func (c *Catalog) Upsert(rec *models.APIRecord) error {
	entry := models.NewCatalogEntry(rec)
	err := c.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", rec.Name, err)
	}
	return nil
}

// Get returns the record for name, or nil when absent.
func (c *Catalog) Get(name string) (*models.APIRecord, error) {
	var entry models.CatalogEntry
	err := c.First(&entry, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	return entry.Record()
}

// ListNames returns all catalogued API names, ordered.
func (c *Catalog) ListNames() ([]string, error) {
	var names []string
	err := c.Model(&models.CatalogEntry{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	return names, nil
}

// Count returns the number of catalogued records.
func (c *Catalog) Count() (int64, error) {
	var count int64
	if err := c.Model(&models.CatalogEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return count, nil
}

// Clear removes every record. Paired with the vector store reset.
func (c *Catalog) Clear() error {
	if err := c.Where("1 = 1").Delete(&models.CatalogEntry{}).Error; err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
