// Package filecache caches binary files in a Redis-like store through the
// typedis facade. A file is stored as a two-field hash under "file:"+name:
//
//	fileName    original base name
//	fileContent base64 (std encoding) of the raw bytes
//
// The record is written in a single HashPutAll, so readers never observe a
// half-written entry. Storing the same name twice overwrites silently.
// The package holds no state between calls; concurrent restores of one name
// race on the materialized temp file and the last writer wins.
package filecache

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unkn0wn-root/typedis"
)

const (
	keyPrefix = "file:"

	fieldName    = "fileName"
	fieldContent = "fileContent"
)

// Key returns the store key for a cached file name. Useful with the facade's
// HasKey/Delete/Expire, which are the only ways to remove or age out a record.
func Key(name string) string { return keyPrefix + name }

// Cache encodes files into FileRecords and back. It talks only to the KV
// facade, never to the store directly.
type Cache struct {
	kv  typedis.KV
	dir string
	log typedis.Logger
}

// Options tune the cache. Only KV is required.
type Options struct {
	KV typedis.KV

	// Dir is the scratch directory Restore materializes files into.
	// Empty means os.TempDir(). Previously materialized files are never
	// cleaned up by this package.
	Dir string

	Logger typedis.Logger // if nil, NopLogger is used
}

func New(opts Options) (*Cache, error) {
	if opts.KV == nil {
		return nil, ErrNilKV
	}
	c := &Cache{
		kv:  opts.KV,
		dir: opts.Dir,
		log: opts.Logger,
	}
	if c.dir == "" {
		c.dir = os.TempDir()
	}
	if c.log == nil {
		c.log = typedis.NopLogger{}
	}
	return c, nil
}

// Store caches the file's full content under its base name, overwriting any
// existing record for that name. The content is read into memory before any
// store write happens, so a read failure leaves the record untouched.
func (c *Cache) Store(ctx context.Context, f *os.File) error {
	if f == nil {
		return ErrNilFile
	}
	name := baseName(f.Name())
	if name == "" {
		return ErrEmptyName
	}
	raw, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("filecache: read %s: %w", name, err)
	}
	return c.put(ctx, name, raw)
}

// StorePath opens path and caches it via Store.
func (c *Cache) StorePath(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("filecache: open %s: %w", path, err)
	}
	defer f.Close()
	return c.Store(ctx, f)
}

// StoreBytes caches raw content directly under name, bypassing the
// filesystem. Round-trips with Restore and RestoreBytes like Store does.
func (c *Cache) StoreBytes(ctx context.Context, name string, raw []byte) error {
	if name == "" {
		return ErrEmptyName
	}
	return c.put(ctx, name, raw)
}

func (c *Cache) put(ctx context.Context, name string, raw []byte) error {
	record := map[string]string{
		fieldName:    name,
		fieldContent: base64.StdEncoding.EncodeToString(raw),
	}
	if err := c.kv.HashPutAll(ctx, Key(name), record); err != nil {
		return err
	}
	c.log.Debug("filecache.store", typedis.Fields{"name": name, "bytes": len(raw)})
	return nil
}

// Restore materializes the cached file into the scratch directory and returns
// its path. ok=false means the name was never cached (or its record was
// deleted); that is not an error. An existing file at the destination path is
// overwritten.
func (c *Cache) Restore(ctx context.Context, name string) (string, bool, error) {
	if name == "" {
		return "", false, ErrEmptyName
	}
	record, err := c.kv.HashGetAll(ctx, Key(name))
	if err != nil {
		return "", false, err
	}
	if len(record) == 0 {
		return "", false, nil
	}

	// Records written by this package always carry both fields; fall back to
	// the requested name if a foreign writer left fileName out. Only the base
	// name is honored so a crafted record cannot escape the scratch dir.
	cachedName := baseName(record[fieldName])
	if cachedName == "" {
		cachedName = baseName(name)
	}
	if cachedName == "" {
		return "", false, ErrEmptyName
	}
	raw, err := base64.StdEncoding.DecodeString(record[fieldContent])
	if err != nil {
		return "", false, &DecodeError{Name: name, Err: err}
	}

	path := filepath.Join(c.dir, cachedName)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", false, fmt.Errorf("filecache: write %s: %w", path, err)
	}
	c.log.Debug("filecache.restore", typedis.Fields{"name": name, "path": path, "bytes": len(raw)})
	return path, true, nil
}

// RestoreBytes returns the cached file's raw bytes without touching the
// filesystem. A never-cached name yields a zero-length result rather than an
// absence signal: the missing content field decodes as an empty string. That
// asymmetry with Restore matches the long-standing observed behavior; callers
// who need to distinguish "not cached" from "cached empty" should use Restore
// or check HasKey(Key(name)) first.
func (c *Cache) RestoreBytes(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	record, err := c.kv.HashGetAll(ctx, Key(name))
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(record[fieldContent])
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}
	return raw, nil
}

// baseName normalizes an os-level file name into a cacheable logical name.
// Degenerate paths ("", ".", "/") yield "".
func baseName(p string) string {
	b := filepath.Base(p)
	if b == "." || b == string(filepath.Separator) {
		return ""
	}
	return b
}
