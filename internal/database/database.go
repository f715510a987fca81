package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the sqlite connection. Schema is owned by the gorm
// migrator; all runtime queries go through the raw *sql.DB.
type Database struct {
	db   *sql.DB
	gorm *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	db, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	return &Database{db: db, gorm: gdb}, nil
}

// NewWithDB builds a Database around an existing connection. Used by tests
// that substitute a sqlmock connection.
func NewWithDB(db *sql.DB) *Database {
	return &Database{db: db}
}

// GetDB returns the underlying *sql.DB
func (d *Database) GetDB() *sql.DB {
	return d.db
}

func (d *Database) Close() error {
	return d.db.Close()
}
