// internal/defs/loader.go
package defs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names inside a data directory.
const (
	WavesFile      = "waves.yaml"
	BuildablesFile = "buildables.yaml"
	LevelsFile     = "levels.yaml"
)

// Library holds every definition loaded from a data directory.
type Library struct {
	Waves      map[string]*WaveData
	Buildables map[string]*BuildableDefinition
	// BuildOrder keeps the buildables in file order for menus and hotkeys.
	BuildOrder []string
	Levels     map[string]*LevelDefinition
}

// LoadLibrary reads waves, buildables and levels from dir.
func LoadLibrary(dir string) (*Library, error) {
	waves, err := LoadWaves(filepath.Join(dir, WavesFile))
	if err != nil {
		return nil, err
	}
	buildables, order, err := LoadBuildables(filepath.Join(dir, BuildablesFile))
	if err != nil {
		return nil, err
	}
	levels, err := LoadLevels(filepath.Join(dir, LevelsFile))
	if err != nil {
		return nil, err
	}
	for id, level := range levels {
		if level.Wave == "" {
			continue
		}
		if _, ok := waves[level.Wave]; !ok {
			return nil, fmt.Errorf("level %q references unknown wave %q", id, level.Wave)
		}
	}
	log.Printf("Loaded %d waves, %d buildables, %d levels from %s", len(waves), len(buildables), len(levels), dir)
	return &Library{Waves: waves, Buildables: buildables, BuildOrder: order, Levels: levels}, nil
}

func readList(path, what string) ([]yaml.Node, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", what, err)
	}
	var nodes []yaml.Node
	if err := yaml.Unmarshal(file, &nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", what, err)
	}
	return nodes, nil
}

// LoadWaves reads a list of wave definitions. Fields a wave omits keep the
// values of DefaultWaveData.
func LoadWaves(path string) (map[string]*WaveData, error) {
	nodes, err := readList(path, "wave")
	if err != nil {
		return nil, err
	}
	waves := make(map[string]*WaveData, len(nodes))
	for i := range nodes {
		wave := DefaultWaveData()
		if err := nodes[i].Decode(&wave); err != nil {
			return nil, fmt.Errorf("failed to decode wave %d: %w", i, err)
		}
		if err := wave.Validate(); err != nil {
			return nil, err
		}
		if _, dup := waves[wave.ID]; dup {
			return nil, fmt.Errorf("duplicate wave id %q", wave.ID)
		}
		waves[wave.ID] = &wave
	}
	return waves, nil
}

// LoadBuildables reads a list of buildable definitions and returns them by
// id together with their file order.
func LoadBuildables(path string) (map[string]*BuildableDefinition, []string, error) {
	nodes, err := readList(path, "buildable")
	if err != nil {
		return nil, nil, err
	}
	defs := make(map[string]*BuildableDefinition, len(nodes))
	order := make([]string, 0, len(nodes))
	for i := range nodes {
		var def BuildableDefinition
		if err := nodes[i].Decode(&def); err != nil {
			return nil, nil, fmt.Errorf("failed to decode buildable %d: %w", i, err)
		}
		if err := def.Validate(); err != nil {
			return nil, nil, err
		}
		if _, dup := defs[def.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate buildable id %q", def.ID)
		}
		defs[def.ID] = &def
		order = append(order, def.ID)
	}
	return defs, order, nil
}

// LoadLevels reads a list of level layouts.
func LoadLevels(path string) (map[string]*LevelDefinition, error) {
	nodes, err := readList(path, "level")
	if err != nil {
		return nil, err
	}
	levels := make(map[string]*LevelDefinition, len(nodes))
	for i := range nodes {
		var level LevelDefinition
		if err := nodes[i].Decode(&level); err != nil {
			return nil, fmt.Errorf("failed to decode level %d: %w", i, err)
		}
		if err := level.Validate(); err != nil {
			return nil, err
		}
		levels[level.ID] = &level
	}
	return levels, nil
}

// Wave looks up a wave by id.
func (l *Library) Wave(id string) (*WaveData, bool) {
	w, ok := l.Waves[id]
	return w, ok
}

// Buildable looks up a buildable by id.
func (l *Library) Buildable(id string) (*BuildableDefinition, bool) {
	d, ok := l.Buildables[id]
	return d, ok
}

// Level looks up a level by id.
func (l *Library) Level(id string) (*LevelDefinition, bool) {
	lv, ok := l.Levels[id]
	return lv, ok
}
