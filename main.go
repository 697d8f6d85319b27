package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/picker/internal/catalog"
	"github.com/llehouerou/picker/internal/config"
	"github.com/llehouerou/picker/internal/errmsg"
	"github.com/llehouerou/picker/internal/option"
	"github.com/llehouerou/picker/internal/optionstore"
	"github.com/llehouerou/picker/internal/picker"
	"github.com/llehouerou/picker/internal/search"
	"github.com/llehouerou/picker/internal/ui"
	"github.com/llehouerou/picker/internal/ui/popup"
)

const debugLogFile = "picker-debug.log"

var errNoOptions = errors.New("the option store is empty, pass --options to import a catalog")

type flags struct {
	config  string
	options string
	db      string
	multi   bool
	async   bool
	group   bool
	flat    bool
	debug   bool
}

var cliFlags flags

var rootCmd = &cobra.Command{
	Use:           "picker",
	Short:         "Pick options from a catalog in the terminal",
	Long:          "picker imports an option catalog into a local SQLite store, shows it in a searchable popup and prints the ids of the selected options.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), cliFlags)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cliFlags.config, "config", "", "config file (default: XDG config, then ./picker.toml)")
	f.StringVar(&cliFlags.options, "options", "", "TOML option catalog to import")
	f.StringVar(&cliFlags.db, "db", "", "option store database")
	f.BoolVar(&cliFlags.multi, "multi", false, "allow selecting several options")
	f.BoolVar(&cliFlags.async, "async", false, "search the store asynchronously")
	f.BoolVar(&cliFlags.group, "group", false, "group options by their group field")
	f.BoolVar(&cliFlags.flat, "flat", false, "render every row instead of only the visible window")
	f.BoolVar(&cliFlags.debug, "debug", os.Getenv("PICKER_DEBUG") != "", "write debug logs to "+debugLogFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	closeLog, err := setupLogging(f.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(f.config)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoadConfig, err))
	}
	pc := cfg.Picker()
	if f.multi {
		pc.Multiple = true
	}
	if f.async {
		pc.Search = config.SearchAsync
	}
	if f.group {
		pc.Group = true
	}
	if f.flat {
		pc.Virtualize = false
	}

	dbPath := f.db
	if dbPath == "" {
		if dbPath, err = cfg.DatabasePath(); err != nil {
			return errors.New(errmsg.Format(errmsg.OpOpenStore, err))
		}
	}
	store, err := optionstore.Open(dbPath)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpOpenStore, dbPath, err))
	}
	defer store.Close()

	root, err := loadOptions(ctx, store, firstNonEmpty(f.options, cfg.OptionsFile))
	if err != nil {
		return err
	}

	p, err := picker.New(root, pickerConfig(pc, store))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpBuildPicker, err))
	}

	size := popup.SizeConfig{WidthPct: pc.WidthPct, HeightPct: pc.HeightPct, MinWidth: ui.MinPopupWidth}
	prog := tea.NewProgram(newApp(p, size), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return err
	}

	if a, ok := final.(*app); ok {
		for _, id := range a.selectedIDs() {
			fmt.Println(id)
		}
	}
	return nil
}

// setupLogging sends slog output to the debug file, or drops it. The
// terminal belongs to the TUI either way.
func setupLogging(debug bool) (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(debugLogFile, "picker")
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { f.Close() }, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		return config.LoadFrom(path)
	}
	return config.Load()
}

// loadOptions imports catalogPath when set and returns the stored tree.
func loadOptions(ctx context.Context, store *optionstore.Store, catalogPath string) ([]option.Option[catalog.Record], error) {
	if catalogPath != "" {
		parsed, err := catalog.LoadFile(catalogPath)
		if err != nil {
			return nil, errors.New(errmsg.FormatWith(errmsg.OpLoadOptions, catalogPath, err))
		}
		if err := store.Import(ctx, parsed); err != nil {
			return nil, errors.New(errmsg.Format(errmsg.OpImportOptions, err))
		}
		slog.Info("catalog imported", "path", catalogPath, "root", len(parsed))
	}

	root, err := store.Load(ctx)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpLoadOptions, err))
	}
	if len(root) == 0 {
		return nil, errNoOptions
	}
	return root, nil
}

func pickerConfig(pc config.PickerConfig, store *optionstore.Store) picker.Config[catalog.Record] {
	cfg := picker.Config[catalog.Record]{
		Key:        catalog.Key,
		Label:      catalog.Label,
		SearchKeys: search.Keys[catalog.Record]{catalog.Label, catalog.Group},
		Ranked:     pc.Matcher == config.MatcherRanked,
		Debounce:   pc.Debounce,
		Multiple:   pc.Multiple,
		Virtualize: pc.Virtualize,
		Estimate:   pc.EstimateSize,
		Overscan:   pc.Overscan,
		MaxDepth:   pc.MaxDepth,
		Title:      "Options",
	}
	switch pc.Search {
	case config.SearchOff:
		cfg.Search = search.ModeOff
	case config.SearchAsync:
		cfg.Search = search.ModeAsync
		cfg.Async = store.Searcher()
	default:
		cfg.Search = search.ModeSync
	}
	if pc.Group {
		cfg.GroupBy = catalog.Group
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
