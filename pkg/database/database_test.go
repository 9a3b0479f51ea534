package database_test

import (
	"log/slog"
	"testing"

	"github.com/tlemoine/classeur/pkg/database"
)

func TestNewOpensPool(t *testing.T) {
	cfg := database.Config{
		Host:            "localhost",
		Port:            5432,
		Name:            "testdb",
		User:            "testuser",
		Password:        "testpass",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: "15m",
		ConnTimeout:     "5s",
	}

	db, err := database.New(&cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := db.Connection()
	if conn == nil {
		t.Fatal("Connection() returned nil")
	}

	// sql.Open is lazy; Close succeeds without a reachable server
	conn.Close()
}

func TestNewSetsPoolParams(t *testing.T) {
	cfg := database.Config{
		Host:            "localhost",
		Port:            5432,
		Name:            "testdb",
		User:            "testuser",
		SSLMode:         "disable",
		MaxOpenConns:    42,
		MaxIdleConns:    7,
		ConnMaxLifetime: "10m",
		ConnTimeout:     "3s",
	}

	db, err := database.New(&cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Connection().Close()

	stats := db.Connection().Stats()
	if stats.MaxOpenConnections != 42 {
		t.Errorf("max open conns: got %d, want 42", stats.MaxOpenConnections)
	}
}
