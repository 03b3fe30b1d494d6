package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dastanaron/tilawah/internal/app"
	"github.com/dastanaron/tilawah/internal/config"
	"github.com/dastanaron/tilawah/internal/repository"
	"github.com/dastanaron/tilawah/internal/storage"
)

// cli carries the flags and the state opened for one invocation
type cli struct {
	out    io.Writer
	errOut io.Writer

	envFile  string
	dbPath   string
	memory   bool
	logLevel string
	logFile  string

	cfg     *config.Config
	log     *logrus.Logger
	logSink *os.File
	repo    repository.Repository
	app     *app.App
}

func newCLI(out, errOut io.Writer) *cli {
	return &cli{out: out, errOut: errOut}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tilawah",
		Short: "A terminal companion for reading the Quran",
		Long: `Tilawah keeps your Quran bookmarks, per-verse notes and reading settings
in a local database, and gives you the companion tools: Qibla direction,
prayer times, surah and juz browsing.

Running tilawah without a command opens the bookmark browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI()
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", ".env", "dotenv file with TILAWAH_* settings")
	flags.StringVar(&c.dbPath, "db", "", "Path to database file (default: ~/.tilawah/tilawah.db)")
	flags.BoolVar(&c.memory, "memory", false, "Keep everything in memory; nothing is saved")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&c.logFile, "log-file", "", "Write logs to this file instead of stderr")

	root.AddCommand(
		c.bookmarkCmd(),
		c.folderCmd(),
		c.noteCmd(),
		c.qiblaCmd(),
		c.prayersCmd(),
		c.surahCmd(),
		c.juzCmd(),
		c.settingsCmd(),
		c.profileCmd(),
		c.langCmd(),
		c.statsCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.clearDoublesCmd(),
		c.tuiCmd(),
	)
	return root
}

// open loads the configuration, sets up logging and opens the store.
// It runs before every command.
func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.WithDBPath(c.dbPath)
	}
	if c.memory {
		cfg.WithMemory()
	}
	if c.logLevel != "" {
		if err := cfg.WithLogLevel(c.logLevel); err != nil {
			return err
		}
	}
	if c.logFile != "" {
		cfg.LogFile = c.logFile
	}
	// the terminal belongs to the UI, so the browser always logs to a file
	if cfg.LogFile == "" && (cmd.Name() == "tui" || cmd.Name() == "tilawah") {
		cfg.LogFile = defaultLogFile(cfg)
	}
	c.cfg = cfg

	if err := c.setupLogger(); err != nil {
		return err
	}

	repo, err := app.OpenRepository(cfg)
	if err != nil {
		return err
	}
	c.repo = repo
	c.app = app.New(cfg, storage.NewHub(repo, c.log))
	c.log.WithFields(logrus.Fields{"db": cfg.DBPath, "memory": cfg.Memory}).Debug("store opened")
	return nil
}

func (c *cli) setupLogger() error {
	c.log = logrus.New()
	c.log.SetLevel(c.cfg.LogLevel)
	c.log.SetOutput(c.errOut)
	c.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if c.cfg.LogFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(c.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	c.logSink = f
	c.log.SetOutput(f)
	return nil
}

func defaultLogFile(cfg *config.Config) string {
	if cfg.Memory {
		return filepath.Join(os.TempDir(), "tilawah.log")
	}
	return filepath.Join(filepath.Dir(cfg.DBPath), "tilawah.log")
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
	}
	if c.repo != nil {
		if err := c.repo.Close(); err != nil && c.log != nil {
			c.log.WithError(err).Warn("failed to close database")
		}
	}
	if c.logSink != nil {
		c.logSink.Close()
	}
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
