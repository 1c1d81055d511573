package tft

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register the sqlite3 driver
)

// Cache stores encoded records keyed by the SHA-1 of the source file and a
// string describing every parameter that affects the encoding.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the sqlite database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Workers share the one connection
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, key TEXT NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, key))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Find returns the record stored for sha and key, or nil if there is none.
func (c *Cache) Find(sha, key string) ([]byte, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT data FROM asset WHERE sha1 = ? AND key = ?", sha, key).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Add stores data for sha and key, replacing any existing record.
func (c *Cache) Add(sha, key string, data []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO asset (sha1, key, data) VALUES (?, ?, ?)", sha, key, data); err != nil {
		return err
	}
	return nil
}

// Length returns the number of records in the cache.
func (c *Cache) Length() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM asset").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear removes every record.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM asset"); err != nil {
		return err
	}
	return nil
}
