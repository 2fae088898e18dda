package database

import (
	"path/filepath"
	"testing"

	"tenbucks-club/internal/config"

	"github.com/rs/zerolog"
)

func TestNewAppliesMigrations(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "club.db")}

	db, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"players", "seasons", "sessions", "session_participants", "doubles_matches"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s: %v", table, err)
		}
	}
}

func TestPlayersRejectPositionWithoutWaitlistStatus(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "club.db")}

	db, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO players (id, name, status, waitlist_position, created_at, updated_at)
		VALUES ('p1', 'Alice', 'playing', 3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("expected check constraint to reject a positioned playing player")
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "club.db")}

	db, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO sessions (id, season_number, number, created_at) VALUES ('s1', 42, 1, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatal("expected foreign key violation for a missing season")
	}
}
