package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/chat-analyzer/internal/config"
	"github.com/Zuo-Peng/chat-analyzer/internal/logging"
	"github.com/Zuo-Peng/chat-analyzer/internal/scan"
)

// env is what every command needs before touching an export.
type env struct {
	cfg *config.Config
	log *logging.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(loggerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Path != "" {
		log.Debugw("config loaded", "path", cfg.Path)
	}
	return &env{cfg: cfg, log: log}, nil
}

func loggerConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel
	lc.Encoding = cfg.LogFormat
	lc.DevMode = cfg.LogDev
	return lc
}

// openSession reads and parses the export at path.
func (e *env) openSession(path string) (*analyze.Session, error) {
	raw, err := scan.ReadExport(path)
	if err != nil {
		return nil, err
	}
	sess, err := analyze.Load(raw, analyze.Options{Logger: e.log.WithField("file", path)})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	e.log.Infow("export loaded", "file", path, "messages", sess.Len(), "participants", len(sess.Senders()))
	return sess, nil
}

func (e *env) reportOptions() analyze.ReportOptions {
	return analyze.ReportOptions{
		TopWords:        e.cfg.TopWords,
		TopEmojis:       e.cfg.TopEmojis,
		TopParticipants: e.cfg.TopParticipants,
		ZeroFill:        e.cfg.ZeroFill,
	}
}

// noColor reports whether output must stay plain: colour disabled in
// config or stdout is not a terminal.
func (e *env) noColor() bool {
	return !e.cfg.Color || !term.IsTerminal(int(os.Stdout.Fd()))
}

// userFilter reads the inherited --user flag. An explicitly empty
// --user="" selects the participant with the empty name.
func userFilter(cmd *cobra.Command) analyze.Filter {
	if !cmd.Flags().Changed("user") {
		return analyze.All()
	}
	name, _ := cmd.Flags().GetString("user")
	return analyze.BySender(name)
}
