package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mpedramfar/Lean-game-maker/pkg/game"
	"github.com/mpedramfar/Lean-game-maker/pkg/lesson"
	"github.com/mpedramfar/Lean-game-maker/pkg/translate"
)

var version = "0.1.0"

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

func main() {
	rootCmd := &cobra.Command{
		Use:   "make-lean-game",
		Short: "Build an interactive Lean game",
		Long: `make-lean-game turns annotated Lean files into an interactive game.

Each level is a single Lean file mixing narrative comments, hidden
scaffolding and lemma/theorem/example/definition blocks. The build produces
game_data.json for the browser interface and a content.pot translation
template.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(parseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "\nError:", err)
		os.Exit(1)
	}
}

// addBuildFlags registers the flags shared by build and watch.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", game.DefaultConfigFile, "Game configuration file")
	cmd.Flags().StringP("outdir", "o", "html", "Output directory")
	cmd.Flags().String("locale", "en", "Languages to build, joined with '+' (e.g. en+fr)")
	cmd.Flags().String("locale-dir", "locale", "Directory holding the PO catalogs, relative to the configuration")
	cmd.Flags().Bool("devmode", false, "Build the game in developer mode")
	cmd.Flags().Bool("nolib", false, "Skip building the Lean library archive")
}

type buildSettings struct {
	configPath string
	outdir     string
	languages  []string
	localeDir  string
	devMode    bool
	noLib      bool
}

func readBuildFlags(cmd *cobra.Command) buildSettings {
	configPath, _ := cmd.Flags().GetString("config")
	outdir, _ := cmd.Flags().GetString("outdir")
	locale, _ := cmd.Flags().GetString("locale")
	localeDir, _ := cmd.Flags().GetString("locale-dir")
	devMode, _ := cmd.Flags().GetBool("devmode")
	noLib, _ := cmd.Flags().GetBool("nolib")

	return buildSettings{
		configPath: configPath,
		outdir:     outdir,
		languages:  translate.ParseLocales(locale),
		localeDir:  localeDir,
		devMode:    devMode,
		noLib:      noLib,
	}
}

// runBuild loads the configuration, builds the game and writes the output.
func runBuild(ctx context.Context, s buildSettings) (*game.Result, error) {
	cfg, err := game.LoadConfig(s.configPath)
	if err != nil {
		return nil, err
	}

	localeDir := cfg.Path(s.localeDir)
	lookups, err := translate.LoadLookups(localeDir, s.languages)
	if err != nil {
		return nil, err
	}

	if s.noLib {
		logger.Info().Str("archive", cfg.LibraryZipName()).Msg("Skipping library archive")
	}

	res, err := game.Build(ctx, cfg, game.BuildOptions{
		Languages: s.languages,
		Lookups:   lookups,
		DevMode:   s.devMode,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	header := translate.Header{ProjectVersion: cfg.Version, CreationDate: time.Now()}
	if err := game.WriteOutput(s.outdir, localeDir, res, header); err != nil {
		return nil, err
	}
	logger.Info().
		Str("output", filepath.Join(s.outdir, "game_data.json")).
		Str("template", filepath.Join(localeDir, translate.Domain+".pot")).
		Msg("Wrote game")
	return res, nil
}

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the game described by a game configuration",
		Long: `Build the game described by a game configuration.

Example:
  make-lean-game build
  make-lean-game build --config game_config.toml --outdir html --locale en+fr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runBuild(cmd.Context(), readBuildFlags(cmd))
			return err
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the game whenever a level or the configuration changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := readBuildFlags(cmd)
			debounce, _ := cmd.Flags().GetDuration("debounce")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &game.Watcher{
				ConfigPath: settings.configPath,
				Debounce:   debounce,
				Logger:     logger,
				Rebuild: func(ctx context.Context) (*game.Result, error) {
					return runBuild(ctx, settings)
				},
			}
			return w.Run(ctx)
		},
	}
	addBuildFlags(cmd)
	cmd.Flags().Duration("debounce", 300*time.Millisecond, "Delay before rebuilding after a change")
	return cmd
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a single level and print its content objects as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exercise, _ := cmd.Flags().GetBool("exercise")
			markersPath, _ := cmd.Flags().GetString("markers")

			markers := lesson.DefaultMarkers()
			if markersPath != "" {
				var err error
				if markers, err = lesson.LoadMarkers(markersPath); err != nil {
					return err
				}
			}
			grammar, err := markers.Compile()
			if err != nil {
				return err
			}

			doc, err := lesson.ReadDocument(args[0])
			if err != nil {
				return err
			}
			level, err := lesson.NewScanner(grammar).Parse(doc, exercise)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(level, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode level: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().Bool("exercise", true, "Replace the proof of the first lemma, theorem or definition with the placeholder")
	cmd.Flags().String("markers", "", "YAML marker file replacing the default Lean 3 markers")
	return cmd
}
