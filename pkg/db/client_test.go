package db

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:db_client?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	if err := conn.Exec("DELETE FROM test_models").Error; err != nil {
		t.Fatalf("failed to reset sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestNew_SQLite(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{DSN: "file:db_new?mode=memory&cache=shared", MaxOpenConns: 1}, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if client.DriverName() != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", client.DriverName())
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNew_RequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, true, nil); err == nil {
		t.Fatalf("expected error without DSN")
	}
}

func TestDriver(t *testing.T) {
	cases := []struct {
		cfg       config.DBConfig
		useSQLite bool
		want      string
	}{
		{cfg: config.DBConfig{}, want: DriverPostgres},
		{cfg: config.DBConfig{Driver: " Postgres "}, want: DriverPostgres},
		{cfg: config.DBConfig{Driver: "sqlite"}, want: DriverSQLite},
		{cfg: config.DBConfig{Driver: "postgres"}, useSQLite: true, want: DriverSQLite},
	}
	for _, tc := range cases {
		if got := Driver(tc.cfg, tc.useSQLite); got != tc.want {
			t.Fatalf("Driver(%+v, %v) = %q want %q", tc.cfg, tc.useSQLite, got, tc.want)
		}
	}
}
