package simulated

import (
	"context"
	"reflect"
	"testing"
)

func TestSourceIsDeterministic(t *testing.T) {
	ctx := context.Background()
	source := NewSource()

	first, err := source.PlayerSeasonStats(ctx, 61415, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := source.PlayerSeasonStats(ctx, 61415, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same (player, season) produced different payloads")
	}
}

func TestSourceVariesByPlayerAndSeason(t *testing.T) {
	ctx := context.Background()
	source := NewSource()

	base, _ := source.PlayerSeasonStats(ctx, 61415, 2023)
	otherPlayer, _ := source.PlayerSeasonStats(ctx, 874, 2023)
	otherSeason, _ := source.PlayerSeasonStats(ctx, 61415, 2022)

	if reflect.DeepEqual(base, otherPlayer) {
		t.Fatal("different players produced identical payloads")
	}
	if reflect.DeepEqual(base, otherSeason) {
		t.Fatal("different seasons produced identical payloads")
	}
}

func TestSourceBlocksAreWellFormed(t *testing.T) {
	ctx := context.Background()
	source := NewSource()

	blocks, err := source.PlayerSeasonStats(ctx, 61415, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) < 1 || len(blocks) > 3 {
		t.Fatalf("unexpected block count: %d", len(blocks))
	}

	for i, block := range blocks {
		if block.LeagueID <= 0 || block.TeamID <= 0 {
			t.Fatalf("block %d missing competition key: %+v", i, block)
		}
		if block.Season != 2023 {
			t.Fatalf("block %d has wrong season: %d", i, block.Season)
		}
		if block.Games == nil || block.Goals == nil {
			t.Fatalf("block %d missing core groups", i)
		}
		if block.Games.Appearances <= 0 || block.Games.Minutes <= 0 {
			t.Fatalf("block %d has implausible games group: %+v", i, *block.Games)
		}
		if block.Games.Lineups > block.Games.Appearances {
			t.Fatalf("block %d has more lineups than appearances: %+v", i, *block.Games)
		}
	}
}

func TestSourceRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	source := NewSource()

	if _, err := source.PlayerSeasonStats(ctx, 0, 2023); err == nil {
		t.Fatal("zero player id accepted")
	}
	if _, err := source.PlayerSeasonStats(ctx, -4, 2023); err == nil {
		t.Fatal("negative player id accepted")
	}
	if _, err := source.PlayerSeasonStats(ctx, 61415, 0); err == nil {
		t.Fatal("zero season accepted")
	}
}
