package dieta

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/imperador1k/dieta/internal/app"
	"github.com/imperador1k/dieta/internal/service"
)

var (
	dbPath  string
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dieta",
	Short: "dieta plans meals and tracks what you actually eat",
	Long:  "dieta is a local-first diet planner: nutrition plans with variations, dishes, per-day meals with eaten tracking, body measurements, and progress photos.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envPath, err := app.DefaultEnvPath()
		if err != nil {
			return err
		}
		loaded, err := app.LoadEnv(envPath, ".env")
		if err != nil {
			return err
		}
		l, err := app.NewLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		service.SetLogger(logger.Named("service"))
		logger.Debug("startup", zap.String("command", cmd.CommandPath()), zap.Strings("env_files", loaded))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")
}
