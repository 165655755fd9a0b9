package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/abhisek/quizflip/internal/config"
	"github.com/abhisek/quizflip/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizflip",
	Short: "Terminal flashcard and quiz reviewer",
	Long:  "quizflip shows one multiple-choice question at a time, scores your first answer and tracks what you missed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides QUIZFLIP_DB env var)")
	flags.String("env-file", "", "Load settings from this .env file (default: ./.env when present)")
	flags.StringArray("set", nil, "Question set to load: file, URL or sample:<name> (repeatable)")
	flags.String("storage", "", "Where the session record lives: sqlite or redis")
	flags.String("questions-dir", "", "Directory searched for question sets")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings from the env file and QUIZFLIP_* variables,
// then applies flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("storage"); v != "" {
		cfg.Storage = strings.ToLower(v)
	}
	if v, _ := cmd.Flags().GetString("questions-dir"); v != "" {
		cfg.QuestionsDir = v
	}
	if v, _ := cmd.Flags().GetStringArray("set"); len(v) > 0 {
		var sets []string
		for _, s := range v {
			sets = append(sets, config.SplitList(s)...)
		}
		cfg.Sets = sets
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path using the configured path
// (--db flag or QUIZFLIP_DB), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
