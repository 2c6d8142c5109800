package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chat-analyzer/internal/open"
)

func openCmd() *cobra.Command {
	var hit int

	cmd := &cobra.Command{
		Use:   "open <export>",
		Short: "Open the export in $EDITOR at a message's line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := 1
			if hit >= 0 {
				e, err := loadEnv()
				if err != nil {
					return err
				}
				defer e.log.Sync()

				sess, err := e.openSession(args[0])
				if err != nil {
					return err
				}
				m, ok := sess.Message(hit)
				sess.Close()
				if !ok {
					return fmt.Errorf("no message %d (export has %d)", hit, sess.Len())
				}
				line = m.Line
			}
			return open.OpenExport(args[0], line)
		},
	}

	cmd.Flags().IntVar(&hit, "hit", -1, "Message seq to jump to")

	return cmd
}
