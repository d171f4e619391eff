package game

import "github.com/mpedramfar/Lean-game-maker/pkg/lesson"

// GameData is the localized payload the browser interface loads. Every text
// field holds a placeholder id into Texts.
type GameData struct {
	Name           string       `json:"name"`
	Version        string       `json:"version"`
	Languages      []string     `json:"languages"`
	TranslatedName int          `json:"translated_name"`
	DevMode        bool         `json:"devmode"`
	LibraryZipFn   string       `json:"library_zip_fn"`
	IntroData      *LevelData   `json:"introData"`
	Worlds         []*WorldData `json:"worlds"`

	// Texts holds, per language in Languages order, the resolved text of
	// every placeholder id.
	Texts [][]string `json:"texts"`
}

// WorldData is one world of the payload.
type WorldData struct {
	Name    int          `json:"name"`
	Levels  []*LevelData `json:"levels"`
	Parents []int        `json:"parents,omitempty"`
}

// LevelData is one scanned lesson.
type LevelData struct {
	Name         int             `json:"name"`
	WorldName    string          `json:"world_name,omitempty"`
	Objects      []lesson.Record `json:"objects"`
	ProblemIndex int             `json:"problemIndex"`
	SourceHash   string          `json:"sourceHash"`
}

// Stats summarizes a build.
type Stats struct {
	Worlds    int
	Levels    int
	Objects   int
	Problems  int
	Exercises int
	Strings   int
}

// Statistics counts worlds, levels and content in the payload.
func (d *GameData) Statistics() Stats {
	var s Stats
	count := func(level *LevelData) {
		s.Objects += len(level.Objects)
		for _, rec := range level.Objects {
			switch rec["type"] {
			case lesson.ObjectType(lesson.KindLemma), lesson.ObjectType(lesson.KindTheorem),
				lesson.ObjectType(lesson.KindExample), lesson.ObjectType(lesson.KindDefinition):
				s.Problems++
			}
		}
		if level.ProblemIndex >= 0 {
			s.Exercises++
		}
	}
	if d.IntroData != nil {
		count(d.IntroData)
	}
	s.Worlds = len(d.Worlds)
	for _, world := range d.Worlds {
		s.Levels += len(world.Levels)
		for _, level := range world.Levels {
			count(level)
		}
	}
	if len(d.Texts) > 0 {
		s.Strings = len(d.Texts[0])
	}
	return s
}
