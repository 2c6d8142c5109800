package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/chat-analyzer/internal/config"
	"github.com/Zuo-Peng/chat-analyzer/internal/index"
	"github.com/Zuo-Peng/chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/chat-analyzer/internal/scan"
)

// sampleExport is a tiny export run through the whole pipeline.
const sampleExport = "1/1/23, 10:00 - A: doctor check https://example.com 👍\n"

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [export]",
		Short: "Self-check: config, SQLite FTS5, text classifiers, terminal; optionally an export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("=== Config ===")
			cfg, err := config.Load()
			if err != nil {
				fmt.Printf("  error: %v\n", err)
				cfg = config.Default()
			} else if cfg.Path == "" {
				fmt.Println("  File: none (defaults)")
			} else {
				fmt.Printf("  File: %s\n", cfg.Path)
			}
			fmt.Printf("  Log: %s/%s  Top: words=%d emojis=%d participants=%d  zero_fill=%t color=%t\n",
				cfg.LogLevel, cfg.LogFormat, cfg.TopWords, cfg.TopEmojis, cfg.TopParticipants, cfg.ZeroFill, cfg.Color)

			fmt.Println("\n=== Engine ===")
			sess, err := analyze.Load(sampleExport, analyze.Options{})
			if err != nil {
				fmt.Printf("  SQLite frame: FAILED (%v)\n", err)
				return nil
			}
			defer sess.Close()
			checkFrame(sess.Frame())

			st, _ := sess.FetchStats(analyze.All())
			fmt.Printf("  Links:  %s\n", okIf(st.Links == 1))
			fmt.Printf("  Emojis: %s\n", okIf(st.Emojis == 1))

			fmt.Println("\n=== Terminal ===")
			fmt.Printf("  stdout TTY: %t\n", term.IsTerminal(int(os.Stdout.Fd())))
			fmt.Printf("  clipboard:  %s\n", okIf(!clipboard.Unsupported))

			if len(args) == 0 {
				return nil
			}

			fmt.Println("\n=== Export ===")
			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				fmt.Printf("  %s (NOT FOUND)\n", path)
				return nil
			}
			fmt.Printf("  %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))

			raw, err := scan.ReadExport(path)
			if err != nil {
				fmt.Printf("  read error: %v\n", err)
				return nil
			}
			res := parse.ParseExport(raw)
			fmt.Printf("  Messages:        %s\n", humanize.Comma(int64(len(res.Messages))))
			fmt.Printf("  System notices:  %s (dropped)\n", humanize.Comma(int64(res.Dropped.SystemNotices)))
			fmt.Printf("  Bad timestamps:  %s (dropped)\n", humanize.Comma(int64(res.Dropped.BadTimestamps)))

			frame, err := index.OpenFrame(res.Messages)
			if err != nil {
				fmt.Printf("  frame error: %v\n", err)
				return nil
			}
			defer frame.Close()
			checkFrame(frame)

			senders, err := frame.Senders()
			if err != nil {
				fmt.Printf("  senders error: %v\n", err)
				return nil
			}
			fmt.Printf("  Participants:    %d\n", len(senders))
			return nil
		},
	}
}

func checkFrame(f *index.Frame) {
	msgCount, err := f.MessageCount()
	if err != nil {
		fmt.Printf("  SQLite frame: FAILED (%v)\n", err)
		return
	}
	ftsCount, err := f.FTSCount()
	if err != nil {
		fmt.Printf("  FTS5 error: %v\n", err)
		return
	}
	if ftsCount == msgCount {
		fmt.Printf("  FTS5: OK (synced, %d rows)\n", ftsCount)
	} else {
		fmt.Printf("  FTS5: MISMATCH (messages=%d, fts=%d)\n", msgCount, ftsCount)
	}
}

func okIf(ok bool) string {
	if ok {
		return "OK"
	}
	return "UNAVAILABLE"
}
