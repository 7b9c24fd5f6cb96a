// Package setup bootstraps a level: a uniform walkable floor with the
// player at a fixed start cell and a handful of npcs scattered on random
// cells. Nothing is persisted; the grid is rebuilt in memory on each run.
package setup

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"tilerogue/pkg/engine/world"
)

// Defaults matching the reference level
const (
	DefaultCols      = 100
	DefaultRows      = 100
	DefaultPlayerCol = 24
	DefaultPlayerRow = 13
	DefaultNPCCount  = 10
)

// Config describes the level to build
type Config struct {
	Cols, Rows           int
	PlayerCol, PlayerRow int
	NPCCount             int
}

// DefaultConfig returns the reference level layout
func DefaultConfig() Config {
	return Config{
		Cols:      DefaultCols,
		Rows:      DefaultRows,
		PlayerCol: DefaultPlayerCol,
		PlayerRow: DefaultPlayerRow,
		NPCCount:  DefaultNPCCount,
	}
}

// Level is a freshly built grid with its spawned entities
type Level struct {
	Grid   *world.Grid
	Player world.EntityID
	NPCs   []world.EntityID
}

// BuildLevel creates the grid and spawns the player and npcs. NPC cells
// are drawn from rng until an unoccupied cell is found, so every entity
// ends up on its own tile.
func BuildLevel(cfg Config, rng *rand.Rand, logger zerolog.Logger) (*Level, error) {
	grid := world.NewGrid(cfg.Cols, cfg.Rows, logger)

	player, err := grid.Spawn("player", cfg.PlayerCol, cfg.PlayerRow)
	if err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}

	npcs := make([]world.EntityID, 0, cfg.NPCCount)
	for i := 0; i < cfg.NPCCount; i++ {
		name := fmt.Sprintf("npc%d", i)
		id, err := spawnAtRandom(grid, name, rng)
		if err != nil {
			return nil, fmt.Errorf("spawn %s: %w", name, err)
		}
		npcs = append(npcs, id)
	}

	return &Level{Grid: grid, Player: player, NPCs: npcs}, nil
}

// spawnAtRandom places an entity on a random unoccupied cell
func spawnAtRandom(grid *world.Grid, name string, rng *rand.Rand) (world.EntityID, error) {
	// The grid is far larger than the entity count, so rejection
	// sampling terminates quickly.
	for attempt := 0; attempt < 1000; attempt++ {
		col := rng.Intn(grid.Cols())
		row := rng.Intn(grid.Rows())
		id, err := grid.Spawn(name, col, row)
		if err == nil {
			return id, nil
		}
	}
	return world.NoEntity, fmt.Errorf("no free cell found for %q", name)
}
