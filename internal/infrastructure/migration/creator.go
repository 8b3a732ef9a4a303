package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// versionLayout orders migration files lexicographically by creation time.
const versionLayout = "20060102150405"

// Pair is a created up/down migration file pair.
type Pair struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// Create writes an empty up/down migration pair into dir, named after the
// current timestamp and the slugified name. The file headers follow the
// same shape as the checked-in migrations.
func Create(dir, name string) (*Pair, error) {
	slug := slugifyName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q contains no usable characters", name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	base := now.Format(versionLayout) + "_" + slug

	p := &Pair{
		Version:  now.Format(versionLayout),
		Name:     slug,
		UpPath:   filepath.Join(dir, base+".up.sql"),
		DownPath: filepath.Join(dir, base+".down.sql"),
	}

	created := now.UTC().Format(time.RFC3339)
	up := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", slug, created)
	down := fmt.Sprintf("-- Migration: %s (rollback)\n-- Created: %s\n\n", slug, created)

	if err := os.WriteFile(p.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", p.UpPath, err)
	}
	if err := os.WriteFile(p.DownPath, []byte(down), 0644); err != nil {
		_ = os.Remove(p.UpPath)
		return nil, fmt.Errorf("failed to write %s: %w", p.DownPath, err)
	}

	return p, nil
}

// List returns the base names of the migration pairs in dir, oldest first.
// A missing directory lists as empty.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan migrations directory: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".up.sql"))
	}
	sort.Strings(names)
	return names, nil
}

// slugifyName collapses a human migration name into lower snake case,
// dropping anything that is not a letter or digit.
func slugifyName(name string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			pendingSep = true
		}
	}
	return b.String()
}
