package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mpedramfar/Lean-game-maker/pkg/lesson"
	"github.com/mpedramfar/Lean-game-maker/pkg/translate"
)

// Occurrence tags of strings that do not come from a level.
const (
	OccurrenceGameConfig  = "game_config"
	OccurrenceWorldConfig = "world_config"
	OccurrenceIntro       = "intro"
)

// BuildOptions controls a build run.
type BuildOptions struct {
	// Languages to resolve texts for, in output order.
	Languages []string

	// Lookups maps a language to its catalog. Missing languages fall back
	// to the original text.
	Lookups map[string]translate.Lookup

	DevMode bool
	Logger  zerolog.Logger
}

// Result is the outcome of a build run.
type Result struct {
	Data *GameData

	// Catalog lists every translatable occurrence of the run.
	Catalog []translate.Entry

	// Hashes maps each source path to its fingerprint.
	Hashes map[string]string
}

// Builder runs one build: a single pass over the intro and every level in
// declared order, sharing one translation indexer.
type Builder struct {
	config  *Config
	opts    BuildOptions
	scanner *lesson.Scanner
	indexer *translate.Indexer
	log     zerolog.Logger
	built   bool
}

// NewBuilder validates cfg and prepares a build run.
func NewBuilder(cfg *Config, opts BuildOptions) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{"en"}
	}

	markers := lesson.DefaultMarkers()
	if cfg.Markers != "" {
		var err error
		markers, err = lesson.LoadMarkers(cfg.Path(cfg.Markers))
		if err != nil {
			return nil, err
		}
	}
	grammar, err := markers.Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling markers: %w", err)
	}

	return &Builder{
		config:  cfg,
		opts:    opts,
		scanner: lesson.NewScanner(grammar),
		indexer: translate.NewIndexer(opts.Languages, opts.Lookups),
		log:     opts.Logger,
	}, nil
}

// Build scans every lesson and assembles the localized payload. It stops at
// the first failing document.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if b.built {
		return nil, fmt.Errorf("builder already ran; create a new one per build")
	}
	b.built = true
	cfg := b.config
	ix := b.indexer

	res := &Result{Hashes: make(map[string]string)}
	data := &GameData{
		Name:         cfg.Name,
		Version:      cfg.Version,
		Languages:    ix.Languages(),
		DevMode:      b.opts.DevMode,
		LibraryZipFn: cfg.LibraryZipName(),
		Worlds:       make([]*WorldData, 0, len(cfg.Worlds)),
	}

	ix.SetOccurrence(OccurrenceGameConfig)
	data.TranslatedName = ix.Register(cfg.Name, true, false)

	b.log.Info().Str("source", cfg.Intro).Msg("Intro page")
	ix.SetOccurrence(OccurrenceIntro)
	intro, err := b.readLevel(cfg.Path(cfg.Intro), false, res)
	if err != nil {
		return nil, fmt.Errorf("intro: %w", err)
	}
	intro.ProblemIndex = -1
	data.IntroData = intro

	for w, world := range cfg.Worlds {
		b.log.Info().Int("world", w+1).Str("name", world.Name).Msg("World")

		ix.SetOccurrence(OccurrenceWorldConfig)
		wd := &WorldData{
			Name:   ix.Register(world.Name, true, false),
			Levels: make([]*LevelData, 0, len(world.Levels)),
		}
		for _, parent := range world.Parents {
			wd.Parents = append(wd.Parents, parent-1)
		}

		for i, source := range world.Levels {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			ix.SetOccurrence(fmt.Sprintf("%s level %d", world.Name, i+1))
			level, err := b.readLevel(cfg.Path(source), true, res)
			if err != nil {
				return nil, fmt.Errorf("world %d level %d: %w", w+1, i+1, err)
			}
			wd.Levels = append(wd.Levels, level)

			b.log.Debug().
				Int("world", w+1).
				Int("level", i+1).
				Int("objects", len(level.Objects)).
				Int("problem_index", level.ProblemIndex).
				Msg("level done")
		}
		data.Worlds = append(data.Worlds, wd)
	}

	data.Texts = ix.Texts()
	res.Data = data
	res.Catalog = ix.Catalog()

	stats := data.Statistics()
	b.log.Info().
		Int("worlds", stats.Worlds).
		Int("levels", stats.Levels).
		Int("problems", stats.Problems).
		Int("strings", stats.Strings).
		Msg("Game built")
	return res, nil
}

// readLevel scans, finalizes and localizes one lesson.
func (b *Builder) readLevel(path string, exercise bool, res *Result) (*LevelData, error) {
	doc, err := lesson.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	res.Hashes[path] = Fingerprint([]byte(doc.Raw()))

	level, err := b.scanner.Parse(doc, exercise)
	if err != nil {
		return nil, err
	}

	name, records := lesson.LocalizeLevel(level, b.indexer)
	return &LevelData{
		Name:         name,
		WorldName:    level.WorldName,
		Objects:      records,
		ProblemIndex: level.ProblemIndex,
		SourceHash:   res.Hashes[path],
	}, nil
}

// Build is a convenience wrapper running a fresh Builder once.
func Build(ctx context.Context, cfg *Config, opts BuildOptions) (*Result, error) {
	b, err := NewBuilder(cfg, opts)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx)
}
