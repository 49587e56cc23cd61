package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/roadsign/internal/config"
	"github.com/abhisek/roadsign/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "roadsign",
	Short: "Learn French road signs over WhatsApp",
	Long:  "Roadsign serves sign lessons and AI-generated driving-theory quizzes to a WhatsApp gateway, and inspects its data from the command line.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotenv()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ROADSIGN_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a sign catalog JSON file (overrides ROADSIGN_CATALOG, default embedded)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(recognizeCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(signsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ROADSIGN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
