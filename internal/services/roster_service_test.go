package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sorofreja/playerdev-backend/internal/models"
)

func TestPlayerScopingBetweenOwners(t *testing.T) {
	db := newTestDB(t)
	svc := NewRosterService(db)
	ownerA, ownerB := uuid.New(), uuid.New()

	// The same player name exists independently in both scopes.
	if _, err := svc.AddPlayer(ownerA, "Jonas", ""); err != nil {
		t.Fatalf("add for A error: %v", err)
	}
	if _, err := svc.AddPlayer(ownerB, "Jonas", "Forward"); err != nil {
		t.Fatalf("add for B error: %v", err)
	}

	playersA, err := svc.Players(ownerA)
	if err != nil || len(playersA) != 1 {
		t.Fatalf("players(A) = %d, %v; want 1", len(playersA), err)
	}
	if playersA[0].UserID != ownerA {
		t.Fatalf("player leaked across scopes: %+v", playersA[0])
	}

	// Deleting A's Jonas leaves B's untouched.
	if err := svc.DeletePlayer(ownerA, "Jonas"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	playersB, err := svc.Players(ownerB)
	if err != nil || len(playersB) != 1 {
		t.Fatalf("players(B) = %d, %v; want 1", len(playersB), err)
	}
	if playersA, _ := svc.Players(ownerA); len(playersA) != 0 {
		t.Fatalf("players(A) = %d, want 0", len(playersA))
	}
}

func TestAddPlayerDuplicate(t *testing.T) {
	svc := NewRosterService(newTestDB(t))
	owner := uuid.New()

	if _, err := svc.AddPlayer(owner, "Mia", ""); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if _, err := svc.AddPlayer(owner, "Mia", "Keeper"); !errors.Is(err, ErrPlayerExists) {
		t.Fatalf("duplicate player, got %v", err)
	}
}

func TestAddPlayerDefaults(t *testing.T) {
	svc := NewRosterService(newTestDB(t))
	owner := uuid.New()

	player, err := svc.AddPlayer(owner, "Mia", "")
	if err != nil {
		t.Fatalf("add error: %v", err)
	}
	if player.Position != "Not specified" {
		t.Fatalf("position = %q, want default", player.Position)
	}
	if _, err := svc.AddPlayer(owner, "", ""); err == nil {
		t.Fatalf("empty name should be rejected")
	}
}

func TestDeletePlayerCascadesMatches(t *testing.T) {
	db := newTestDB(t)
	roster := NewRosterService(db)
	matches := NewMatchService(db, roster)
	owner := uuid.New()

	if _, err := roster.AddPlayer(owner, "Mia", ""); err != nil {
		t.Fatalf("add error: %v", err)
	}
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	err := matches.RecordMatch(owner, date, "12:00", "Team Alpha", []PlayerRatings{{
		PlayerName: "Mia", Boldholder: models.RatingA, Medspiller: models.RatingB,
		Presspiller: models.RatingC, Stottespiller: models.RatingD,
	}})
	if err != nil {
		t.Fatalf("record error: %v", err)
	}

	if err := roster.DeletePlayer(owner, "Mia"); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	var count int64
	db.Model(&models.MatchRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("match records = %d, want 0 after cascade", count)
	}
}

func TestDeleteUnknownPlayer(t *testing.T) {
	svc := NewRosterService(newTestDB(t))
	if err := svc.DeletePlayer(uuid.New(), "Ghost"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("unknown player delete, got %v", err)
	}
}
