package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/chat-analyzer/internal/scan"
)

// exportSummary is one row of the list table.
type exportSummary struct {
	file         scan.FileInfo
	messages     int
	participants int
	first, last  time.Time
	err          error
}

func listCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "list [dir...]",
		Short: "Find chat exports under directories and summarise each",
		Long:  `Walks the given directories (default: current directory) for .txt and .zip exports, newest first, and parses them in parallel. Files that are not exports are listed with the reason.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			if len(args) == 0 {
				args = []string{"."}
			}

			var files []scan.FileInfo
			for _, root := range args {
				found, err := scan.FindExports(root)
				if err != nil {
					return fmt.Errorf("scan %s: %w", root, err)
				}
				files = append(files, found...)
			}
			if len(files) == 0 {
				fmt.Fprintln(os.Stderr, "No exports found.")
				return nil
			}

			rows, err := summarise(cmd.Context(), files, jobs)
			if err != nil {
				return err
			}
			for _, r := range rows {
				if r.err != nil {
					e.log.WithError(r.err).Debugw("skipped file", "file", r.file.Path)
				}
			}
			printSummaries(rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", runtime.NumCPU(), "Exports parsed in parallel")

	return cmd
}

// summarise parses every file on its own goroutine. A file that fails to
// read is reported in its row; only cancellation aborts the whole run.
func summarise(ctx context.Context, files []scan.FileInfo, jobs int) ([]exportSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rows := make([]exportSummary, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = summariseFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func summariseFile(f scan.FileInfo) exportSummary {
	row := exportSummary{file: f}
	raw, err := scan.ReadExport(f.Path)
	if err != nil {
		row.err = err
		return row
	}
	msgs := parse.Parse(raw)
	row.messages = len(msgs)
	if len(msgs) == 0 {
		return row
	}
	senders := make(map[string]struct{})
	for _, m := range msgs {
		senders[m.Sender] = struct{}{}
	}
	row.participants = len(senders)
	row.first = msgs[0].Timestamp
	row.last = msgs[len(msgs)-1].Timestamp
	return row
}

func printSummaries(rows []exportSummary) {
	for _, r := range rows {
		name := runewidth.FillRight(runewidth.Truncate(filepath.Base(r.file.Path), 36, "…"), 36)
		meta := fmt.Sprintf("%-3s %8s  %-14s", r.file.Format, humanize.Bytes(uint64(r.file.Size)), humanize.Time(time.Unix(r.file.Mtime, 0)))
		switch {
		case r.err != nil:
			fmt.Printf("%s  %s  error: %v\n", name, meta, r.err)
		case r.messages == 0:
			fmt.Printf("%s  %s  no messages\n", name, meta)
		default:
			fmt.Printf("%s  %s  %8s msgs  %3d people  %s .. %s\n",
				name, meta,
				humanize.Comma(int64(r.messages)),
				r.participants,
				r.first.Format("2006-01-02"),
				r.last.Format("2006-01-02"),
			)
		}
	}
}
