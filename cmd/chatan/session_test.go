package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chat-analyzer/internal/analyze"
	"github.com/Zuo-Peng/chat-analyzer/internal/config"
	"github.com/Zuo-Peng/chat-analyzer/internal/logging"
)

func TestUserFilter(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want analyze.Filter
	}{
		{"absent", []string{"sub"}, analyze.All()},
		{"named", []string{"sub", "--user", "Alice"}, analyze.BySender("Alice")},
		{"explicitly empty", []string{"sub", "--user="}, analyze.BySender("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got analyze.Filter
			root := &cobra.Command{Use: "root"}
			root.PersistentFlags().String("user", "", "")
			root.AddCommand(&cobra.Command{
				Use: "sub",
				RunE: func(cmd *cobra.Command, args []string) error {
					got = userFilter(cmd)
					return nil
				},
			})
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())

			wantName, wantSet := tt.want.Sender()
			gotName, gotSet := got.Sender()
			assert.Equal(t, wantSet, gotSet)
			assert.Equal(t, wantName, gotName)
		})
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"
	cfg.LogDev = true

	lc := loggerConfig(cfg)
	assert.Equal(t, logging.Config{Level: "debug", Encoding: "json", DevMode: true}, lc)

	_, err := logging.New(lc)
	require.NoError(t, err)
}

func TestColorizeSnippet(t *testing.T) {
	assert.Equal(t, "say hi", colorizeSnippet("say >>>hi<<<", false))
	assert.Equal(t, "say "+sColorBoldRed+"hi"+sColorReset, colorizeSnippet("say >>>hi<<<", true))
}
