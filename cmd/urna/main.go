package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/urna/internal/backend"
	"github.com/jask/urna/internal/config"
	"github.com/jask/urna/internal/database"
	"github.com/jask/urna/internal/database/repository"
	"github.com/jask/urna/internal/service"
	"github.com/jask/urna/internal/tui"
	"github.com/jask/urna/internal/voting"
	"github.com/jask/urna/internal/workflow"
)

const programName = "urna"

var globalFlags = struct {
	debug      bool
	configFile string
}{}

// env is what every command needs once config is loaded.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	client  *backend.Client
	audit   *service.AuditService
	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// commonRun loads config and sets up logging, the backend client and the
// audit journal. Logs go to log.path since the TUI owns the terminal.
func commonRun(withAudit bool) (*env, error) {
	cfg, err := config.Load(globalFlags.configFile)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		e.closers = append(e.closers, closer)
	}
	slog.SetDefault(logger)
	e.logger = logger

	e.client, err = backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	if err != nil {
		e.Close()
		return nil, err
	}

	if withAudit && cfg.Audit.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Audit.Path), 0o755); err != nil {
			e.Close()
			return nil, fmt.Errorf("mkdir audit dir: %w", err)
		}
		db, err := database.OpenMigrated(cfg.Audit.Path)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.closers = append(e.closers, db)
		e.audit = service.NewAuditService(repository.NewJournalRepo(db))
	}
	logger.Debug("config loaded",
		"component", programName,
		"backend", cfg.Backend.URL,
		"election", cfg.Election.ID,
		"dataset_mode", cfg.Election.DatasetMode,
		"audit", e.audit != nil,
	)
	return e, nil
}

func newLogger(c config.LogConfig) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, nil, fmt.Errorf("log.level: %w", err)
	}
	addSource := false
	if globalFlags.debug {
		level = slog.LevelDebug
		addSource = true
	}
	opts := &slog.HandlerOptions{AddSource: addSource, Level: level}
	if strings.TrimSpace(c.Path) == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f, nil
}

func (e *env) runner() *workflow.Runner {
	r := &workflow.Runner{Backend: e.client, Logger: e.logger}
	if e.audit != nil {
		r.Journal = e.audit
	}
	return r
}

func (e *env) settings() workflow.Settings {
	return workflow.Settings{
		ElectionID:  e.cfg.Election.ID,
		DatasetMode: workflow.DatasetMode(e.cfg.Election.DatasetMode),
		Provenance: voting.Provenance{
			LocationHash: e.cfg.Vote.LocationHash,
			ChainHash:    e.cfg.Vote.ChainHash,
			QRCode:       e.cfg.Vote.QRCode,
		},
	}
}

func serveRun(cmd *cobra.Command, _ []string) error {
	e, err := commonRun(true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	e.logger.Info("terminal started", "component", programName)
	p := tea.NewProgram(tui.New(ctx, e.runner(), e.settings(), e.cfg.UI.Language), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	e.logger.Info("terminal stopped", "component", programName)
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Electronic voting terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveRun,
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.configFile, "config", "", "path to config file")

	rootCmd.AddCommand(statusCommand())
	rootCmd.AddCommand(officesCommand())
	rootCmd.AddCommand(uploadKeysCommand())
	rootCmd.AddCommand(uploadElectionCommand())
	rootCmd.AddCommand(auditCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}
