package defs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-elemental-td/pkg/pathgraph"
	"go-elemental-td/pkg/utils"
)

const dataDir = "../../assets/data"

func TestLoadLibraryFromAssets(t *testing.T) {
	lib, err := LoadLibrary(dataDir)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}

	wave, ok := lib.Wave("default")
	if !ok {
		t.Fatal("default wave missing")
	}
	if wave.MinEnemies != 5 || wave.MaxEnemies != 30 || wave.MaxRounds != 10 {
		t.Errorf("unexpected wave bounds %+v", wave)
	}
	if got := wave.DifficultyCurve.Evaluate(0); got != 0 {
		t.Errorf("difficulty(0) = %v, want 0", got)
	}
	if wave.PotentialEnemies[wave.Easiest()].ID != "grunt" {
		t.Errorf("easiest enemy = %q, want grunt", wave.PotentialEnemies[wave.Easiest()].ID)
	}

	gauntlet, ok := lib.Wave("gauntlet")
	if !ok || !gauntlet.DifficultyCurve.IsScript() {
		t.Fatal("gauntlet should use a script curve")
	}
	if gauntlet.MinSpawnInterval != 0.1 || gauntlet.InitialSpawnInterval != 1.0 {
		t.Errorf("omitted fields should keep defaults, got %+v", gauntlet)
	}
	if got := gauntlet.PotentialEnemies[2].Reward.String(); got != "1.2K" {
		t.Errorf("titan reward = %q, want 1.2K", got)
	}

	if len(lib.BuildOrder) != len(lib.Buildables) || lib.BuildOrder[0] != "water_turret" {
		t.Errorf("build order %v", lib.BuildOrder)
	}
	water, _ := lib.Buildable("water_turret")
	path, ok := water.Upgrade(UpgradeDamageMultiplier)
	if !ok {
		t.Fatal("water turret should have a damage upgrade")
	}
	if path.MaxUpgrades() != 3 || path.CostFor(2).String() != "80" || path.ValueFor(0) != 1 {
		t.Errorf("upgrade path: max %d cost(2) %v value(0) %v", path.MaxUpgrades(), path.CostFor(2), path.ValueFor(0))
	}
	shock, _ := lib.Buildable("shock_turret")
	if shock.Turret.Targeting != TargetClosestNoSight || shock.Turret.Element != Electricity {
		t.Errorf("shock turret %+v", shock.Turret)
	}
	ice, _ := lib.Buildable("ice_turret")
	if ice.Turret.Targeting != TargetClosest {
		t.Errorf("targeting should default to closest, got %q", ice.Turret.Targeting)
	}
	fire, _ := lib.Buildable("fire_turret")
	if up, _ := fire.Upgrade(UpgradeDamageMultiplier); up.ValueFor(2) != 2 {
		t.Errorf("scripted upgrade value(2) = %v, want 2", up.ValueFor(2))
	}

	meadow, ok := lib.Level("meadow")
	if !ok {
		t.Fatal("meadow level missing")
	}
	if g := meadow.BuildGraph(); g.Len() != 4 {
		t.Errorf("meadow has %d branches, want 4", g.Len())
	}
}

func writeData(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	base := map[string]string{
		WavesFile:      "- id: w\n  potential_enemies: [{id: a, health: 1, weight: 1}]\n",
		BuildablesFile: "- {id: slow, kind: slower, vision_radius: 2, slower: {multiplier: 0.5}}\n",
		LevelsFile:     "- id: l\n  wave: w\n  path: [{position: {x: 0}}]\n",
	}
	for name, body := range files {
		base[name] = body
	}
	for name, body := range base {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadLibraryErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"minimal is valid", nil, ""},
		{"unknown element", map[string]string{
			BuildablesFile: "- {id: t, kind: turret, vision_radius: 2, turret: {element: plasma}}\n",
		}, "unknown element"},
		{"unknown targeting", map[string]string{
			BuildablesFile: "- {id: t, kind: turret, vision_radius: 2, turret: {element: fire, targeting: last}}\n",
		}, "unknown targeting"},
		{"kind without stats", map[string]string{
			BuildablesFile: "- {id: z, kind: zone, vision_radius: 2}\n",
		}, "needs zone stats"},
		{"duplicate wave", map[string]string{
			WavesFile: "- id: w\n  potential_enemies: [{id: a, health: 1}]\n- id: w\n  potential_enemies: [{id: a, health: 1}]\n",
		}, "duplicate wave"},
		{"unknown wave reference", map[string]string{
			LevelsFile: "- id: l\n  wave: nope\n  path: [{position: {x: 0}}]\n",
		}, "unknown wave"},
		{"empty path", map[string]string{
			LevelsFile: "- id: l\n  path: []\n",
		}, "empty path"},
		{"no enemies", map[string]string{
			WavesFile: "- id: w\n",
		}, "no potential enemies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLibrary(writeData(t, tt.files))
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadLibraryMissingDir(t *testing.T) {
	if _, err := LoadLibrary(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLevelExtent(t *testing.T) {
	level := &LevelDefinition{
		Path: []*pathgraph.Node{
			{Position: utils.Vec3{X: 0, Z: 5}, Branch: []*pathgraph.Node{{Position: utils.Vec3{X: 4, Z: -3}}}},
			{Position: utils.Vec3{X: 10, Z: 5}},
		},
		Obstacles: []Box{{Min: utils.Vec3{X: 2, Z: 6}, Max: utils.Vec3{X: 3, Z: 9}}},
	}
	lo, hi := level.Extent()
	if lo != (utils.Vec3{X: 0, Z: -3}) || hi != (utils.Vec3{X: 10, Z: 9}) {
		t.Fatalf("extent = %v..%v", lo, hi)
	}

	level.Bounds = Box{Min: utils.Vec3{X: -1, Z: -1}, Max: utils.Vec3{X: 1, Z: 1}}
	if lo, hi := level.Extent(); lo != level.Bounds.Min || hi != level.Bounds.Max {
		t.Fatalf("authored bounds ignored: %v..%v", lo, hi)
	}
}
