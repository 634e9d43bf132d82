// Package sqlmigrate holds the migration file conventions shared by the
// Postgres and SQLite stores.
package sqlmigrate

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// File is one migration; Version is the file name without the .sql suffix.
type File struct {
	Version string
	Name    string
	Up      string
}

// Load reads every .sql file under root in lexical order.
func Load(fsys fs.FS, root string) ([]File, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]File, 0, len(names))
	for _, name := range names {
		path := name
		if root != "." {
			path = root + "/" + name
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		files = append(files, File{
			Version: strings.TrimSuffix(name, ".sql"),
			Name:    name,
			Up:      ExtractUpMigration(string(content)),
		})
	}
	return files, nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section, or the
// whole file when it carries no markers.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, downMarker)
	if downIdx == -1 || downIdx < upIdx {
		return content[upIdx+len(upMarker):]
	}
	return content[upIdx+len(upMarker) : downIdx]
}

// IsAlreadyExistsError reports whether this error indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}
