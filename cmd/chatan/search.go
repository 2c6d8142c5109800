package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string, color bool) string {
	if !color {
		snippet = strings.ReplaceAll(snippet, ">>>", "")
		return strings.ReplaceAll(snippet, "<<<", "")
	}
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	return strings.ReplaceAll(snippet, "<<<", sColorReset)
}

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <export> <query>",
		Short: "Full-text search over the messages of an export",
		Long: `Search messages using FTS5 (substring match for CJK queries). Output is TSV
for fzf integration:
  seq, timestamp, sender, snippet

Recommended shell function (add to .zshrc):
  chatf() {
    chatan search "$1" "${@:2}" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=2.. \
      --preview "chatan show '$1' --hit {1} --context 5 --query {q}" \
      --preview-window=right:60%:wrap \
      --bind "enter:execute(chatan open '$1' --hit {1})"
  }`,
		Args: cobra.MinimumNArgs(2),
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

			opts := search.Options{
				Query: strings.Join(args[1:], " "),
				Limit: limit,
			}
			if name, ok := userFilter(cmd).Sender(); ok {
				opts.Sender = &name
			}

			results, err := search.Search(sess.Frame(), opts)
			if err != nil {
				return err
			}
			e.log.Debugw("search done", "query", opts.Query, "results", len(results))

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			color := !e.noColor()
			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				ts, sender := r.Ts, r.Sender
				if color {
					ts = sColorDim + ts + sColorReset
					sender = sColorBlue + sender + sColorReset
				}
				// first field stays plain for fzf {1}
				fmt.Printf("%d\t%s\t%s\t%s\n", r.Seq, ts, sender, colorizeSnippet(snippet, color))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
