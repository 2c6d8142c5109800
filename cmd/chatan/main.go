package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// a .env next to the exports is optional
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "chatan",
		Short:   "Chat Analyzer - statistics and timelines for WhatsApp chat exports",
		Version: version,
		// usage is noise for data errors like a bad archive
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("user", "", "Restrict to one participant (exact name); omit for overall")

	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(wordsCmd())
	rootCmd.AddCommand(emojiCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(dashCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
