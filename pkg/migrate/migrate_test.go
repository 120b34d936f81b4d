package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDialect(t *testing.T) {
	cases := map[string]string{
		"sqlite":   "sqlite3",
		"sqlite3":  "sqlite3",
		"postgres": "postgres",
		"":         "postgres",
	}
	for driver, want := range cases {
		if got := Dialect(driver); got != want {
			t.Fatalf("Dialect(%q) = %q want %q", driver, got, want)
		}
	}
}

func TestRunUpOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_up?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	if err := Run(context.Background(), sqlDB, "sqlite", "migrations", "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}

	var count int64
	if err := conn.Raw("SELECT COUNT(*) FROM catalog_products").Scan(&count).Error; err != nil {
		t.Fatalf("catalog_products not created: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}
}

func TestRunRequiresDB(t *testing.T) {
	if err := Run(context.Background(), nil, "postgres", "migrations", "up"); err == nil {
		t.Fatalf("expected error without db")
	}
}

func TestValidateDir(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations should validate: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatalf("expected invalid filename error")
	}

	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_no_down.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateDir(dir); err == nil || !strings.Contains(err.Error(), "goose Down") {
		t.Fatalf("expected missing down error, got %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Catalog Tags!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_catalog_tags.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}

	if _, err := CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatalf("expected error for empty sanitized name")
	}
}
