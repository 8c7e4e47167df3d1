// store/mysql_store.go
package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql" // MariaDB driver

	"github.com/tbnguyen/covidtracker/config"
)

// DBStore keeps cache blobs in a single MySQL table keyed by
// (namespace, cache_key). Useful when several hosts share one cache.
type DBStore struct {
	db *sql.DB
}

// NewDBStore opens the connection pool, verifies connectivity and
// ensures the cache table exists.
func NewDBStore(cfg config.DatabaseConfig) (*DBStore, error) {
	// DSN: username:password@protocol(address)/dbname?param=value
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &DBStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	log.Println("Store: connected to MySQL cache backend")
	return s, nil
}

func (s *DBStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_blobs (
			namespace  VARCHAR(32)  NOT NULL,
			cache_key  VARCHAR(128) NOT NULL,
			content    LONGBLOB     NOT NULL,
			created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, cache_key)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure cache_blobs table: %w", err)
	}
	return nil
}

func (s *DBStore) Has(namespace, key string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM cache_blobs WHERE namespace = ? AND cache_key = ?`,
		namespace, key,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check cache entry %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

func (s *DBStore) Get(namespace, key string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT content FROM cache_blobs WHERE namespace = ? AND cache_key = ?`,
		namespace, key,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no cache entry %s/%s", namespace, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry %s/%s: %w", namespace, key, err)
	}
	return blob, nil
}

func (s *DBStore) Put(namespace, key string, blob []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO cache_blobs (namespace, cache_key, content)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE content = VALUES(content)
	`, namespace, key, blob)
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Close releases the connection pool. Typically called on shutdown.
func (s *DBStore) Close() error {
	return s.db.Close()
}
