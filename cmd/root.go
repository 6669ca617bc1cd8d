package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/baba/internal/config"
	"github.com/abhisek/baba/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "baba",
	Short: "Bilingual Arabic/English academic tutor",
	Long:  "BABA is a bilingual tutoring assistant that explains concepts, improves academic writing and quizzes learners in Arabic and English.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BABA_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then BABA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
