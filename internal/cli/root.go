package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sadopc/vigil/internal/app"
	"github.com/sadopc/vigil/internal/config"
	"github.com/sadopc/vigil/internal/logger"
	"github.com/sadopc/vigil/internal/store"
)

// CLI is the kong grammar of the vigil command.
type CLI struct {
	Config string `help:"Config file path. Defaults to <user config dir>/vigil/config.yaml." type:"path" placeholder:"PATH"`
	DB     string `name:"db" help:"Database path. Overrides db_path from the config file." type:"path" placeholder:"PATH"`
	Debug  bool   `help:"Log debug output to stderr."`

	Tui      TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status   StatusCmd   `cmd:"" help:"Show today's prayers and their status."`
	Next     NextCmd     `cmd:"" help:"Show the next prayer that can be completed."`
	Complete CompleteCmd `cmd:"" help:"Mark a prayer completed."`
	Verses   VersesCmd   `cmd:"" help:"Show the verses pinned to a prayer."`
	Rotation struct {
		Draw  RotationDrawCmd  `cmd:"" help:"Draw two verses from the daily rotation." default:"1"`
		Stats RotationStatsCmd `cmd:"" help:"Show rotation progress."`
		Reset RotationResetCmd `cmd:"" help:"Start a new rotation epoch."`
	} `cmd:"" help:"Daily verse rotation."`
	Prayer struct {
		Add  PrayerAddCmd  `cmd:"" help:"Add a prayer slot."`
		List PrayerListCmd `cmd:"" help:"List prayer slots." default:"1"`
		Edit PrayerEditCmd `cmd:"" help:"Rename or reschedule a prayer slot."`
		Rm   PrayerRmCmd   `cmd:"" help:"Remove a prayer slot."`
	} `cmd:"" help:"Manage prayer slots."`
	History HistoryCmd `cmd:"" help:"Show completion history."`
	Export  ExportCmd  `cmd:"" help:"Export completion history."`
}

// Finish closes the store after a command ran. A close failure is logged and
// returned unless the command already failed.
func Finish(runErr error, closeStore func() error) error {
	if err := closeStore(); err != nil {
		logger.Error("close store", "err", err)
		if runErr == nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return runErr
}

// Interactive reports whether command takes over the terminal.
func Interactive(command string) bool {
	return command == "tui"
}

// Open loads configuration, starts logging and opens the store. The
// returned close func releases the store. When interactive, debug logging
// goes to the log file only.
func (c *CLI) Open(out io.Writer, interactive bool) (*Context, func() error, error) {
	cfgPath := c.Config
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve config path: %w", err)
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(logger.Config{
		Debug:    c.Debug || cfg.Debug,
		Dir:      filepath.Dir(cfgPath),
		FileOnly: interactive,
	}); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath := c.DB
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, nil, err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if seeded, err := s.SeedPrayers(cfg.Definitions()); err != nil {
		s.Close()
		return nil, nil, err
	} else if seeded {
		logger.Info("seeded prayers", "count", len(cfg.Prayers), "db", dbPath)
	}

	return &Context{
		App:    app.New(s, cfg.PointsPerPrayer),
		Config: cfg,
		Out:    out,
	}, s.Close, nil
}
