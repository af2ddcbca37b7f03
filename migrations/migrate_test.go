// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The reviewintel Authors

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, "pgx")
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(db, "oracle")
	if err == nil {
		t.Fatal("expected error for unsupported dialect, got nil")
	}

	if !strings.Contains(err.Error(), "unsupported dialect") {
		t.Errorf("expected unsupported dialect error, got: %v", err)
	}
}

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// sqlmock has no expectations set, so goose's version bookkeeping fails
	err = Migrate(db, "pgx")
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestEmbeddedMigrations_BothDialectsPresent(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		entries, err := embedMigrations.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read embedded %s migrations: %v", dir, err)
		}
		if len(entries) < 2 {
			t.Errorf("expected at least 2 %s migrations, got %d", dir, len(entries))
		}
	}
}

func TestEmbeddedMigrations_SeedIsIdempotent(t *testing.T) {
	for _, path := range []string{"postgres/00002_seed_admin.sql", "sqlite/00002_seed_admin.sql"} {
		data, err := embedMigrations.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}

		seed := string(data)
		if !strings.Contains(seed, "WHERE NOT EXISTS") {
			t.Errorf("%s: seed must be guarded by WHERE NOT EXISTS", path)
		}
		if !strings.Contains(seed, "'admin'") || !strings.Contains(seed, "'admin@aim.com'") {
			t.Errorf("%s: seed must create the default admin account", path)
		}
	}
}
