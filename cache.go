package asciiimage

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/asciiimage/render"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3" // register driver
)

// Cache stores rendered lines keyed by the checksum of the source image and
// the settings that affect the choice of glyphs. The output mode is not part
// of the key as it only changes how the lines are wrapped.
type Cache struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewCache opens or creates the cache database in file
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS render (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, tile_width INTEGER NOT NULL, depth INTEGER NOT NULL, invert INTEGER NOT NULL, lines BLOB NOT NULL, UNIQUE(sha1, tile_width, depth, invert))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithZeroFrames(true))
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &Cache{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the database
func (c *Cache) Close() error {
	c.dec.Close()
	if err := c.enc.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}

// Find returns the lines stored for the checksum and configuration. The
// boolean is false if there is no entry.
func (c *Cache) Find(sha string, cfg render.Config) ([]byte, bool, error) {
	var blob []byte
	switch err := c.db.QueryRow("SELECT lines FROM render WHERE sha1 = ? AND tile_width = ? AND depth = ? AND invert = ?", sha, cfg.TileWidth, cfg.Depth, cfg.Invert).Scan(&blob); err {
	case sql.ErrNoRows:
		return nil, false, nil
	case nil:
		lines, err := c.dec.DecodeAll(blob, nil)
		if err != nil {
			return nil, false, err
		}
		return lines, true, nil
	default:
		return nil, false, err
	}
}

// Store saves the lines for the checksum and configuration, replacing any
// existing entry
func (c *Cache) Store(sha string, cfg render.Config, lines []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO render (sha1, tile_width, depth, invert, lines) VALUES (?, ?, ?, ?, ?)", sha, cfg.TileWidth, cfg.Depth, cfg.Invert, c.enc.EncodeAll(lines, nil)); err != nil {
		return err
	}
	return nil
}

// Length returns the number of stored renders
func (c *Cache) Length() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM render").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func sha1File(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}
