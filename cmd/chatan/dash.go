package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chat-analyzer/internal/render"
	"github.com/Zuo-Peng/chat-analyzer/internal/tui"
)

func dashCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "dash <export>",
		Short: "Interactive dashboard: participants, their reports, and message search",
		Long: `Opens a two-panel TUI. The left panel lists the overall view and every
participant (type to filter, Tab switches to message search); the right panel
shows the selected report or conversation. Enter copies a summary to the clipboard.

When stdout is not a terminal the full report is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			sess, err := e.openSession(args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(sess, tui.Options{
					Title:   filepath.Base(args[0]),
					Report:  e.reportOptions(),
					Limit:   limit,
					NoColor: !e.cfg.Color,
				})
			}

			r, err := sess.Analyze(userFilter(cmd), e.reportOptions())
			if err != nil {
				return err
			}
			return render.RenderReport(os.Stdout, r, render.ReportOptions{NoColor: true})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Max search results")

	return cmd
}
