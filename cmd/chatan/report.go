package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/render"
)

// sectionCmd builds a command printing some sections of the report.
func sectionCmd(use, short string, sections ...string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <export>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], false, sections)
		},
	}
}

func statsCmd() *cobra.Command {
	return sectionCmd("stats", "Message, word, media, link, deletion and emoji counts", "stats")
}

func usersCmd() *cobra.Command {
	return sectionCmd("users", "Most active participants by share of messages", "users")
}

func wordsCmd() *cobra.Command {
	return sectionCmd("words", "Most common words, stop words excluded", "words")
}

func emojiCmd() *cobra.Command {
	return sectionCmd("emoji", "Most common emojis", "emoji")
}

func timelineCmd() *cobra.Command {
	return sectionCmd("timeline", "Monthly, daily, weekday, month and hour activity", "timeline")
}

func reportCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report <export>",
		Short: "Full analysis of an export (.txt or .zip)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], asJSON, nil)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func runReport(cmd *cobra.Command, path string, asJSON bool, sections []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	sess, err := e.openSession(path)
	if err != nil {
		return err
	}
	defer sess.Close()

	r, err := sess.Analyze(userFilter(cmd), e.reportOptions())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return render.RenderReport(os.Stdout, r, render.ReportOptions{NoColor: e.noColor(), Sections: sections})
}
