package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/render"
)

func showCmd() *cobra.Command {
	var hit int
	var context int
	var width int
	var query string

	cmd := &cobra.Command{
		Use:   "show <export>",
		Short: "Show the conversation around a message",
		Args:  cobra.ExactArgs(1),
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

			out, _, err := render.RenderConversation(sess.Frame(), render.Options{
				Hit:     hit,
				Context: context,
				Width:   width,
				Query:   query,
				Title:   filepath.Base(args[0]),
				NoColor: e.noColor(),
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&hit, "hit", -1, "Message seq to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after hit to show (-1 = all)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = no wrap)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}
