package cmd

import (
	"context"
	"io/fs"
	stdlog "log"
	"os"

	"github.com/spf13/cobra"
	log "github.com/spf13/jwalterweatherman"

	"github.com/nlwcopa/bolao-web/config"
)

var (
	verbose bool
	envFile string

	// staticFiles holds the embedded static/ tree, rooted at its contents.
	staticFiles fs.FS
)

var rootCmd = &cobra.Command{
	Use:   "bolao-web",
	Short: "Landing page for the bolão app",
	Long: `bolao-web serves the landing page of the bolão app: live counters
fetched from the backend API and a form that creates a new pool.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the CLI. static is served under /static/ unless DEV_MODE
// points the server at the working tree.
func Execute(ctx context.Context, static fs.FS) error {
	staticFiles = static
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file instead of .env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stubCmd)
	addServeFlags(rootCmd)
}

// initConfig sets up logging.
func initConfig() {
	log.SetStdoutOutput(os.Stderr)
	log.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds)
	if verbose {
		log.SetStdoutThreshold(log.LevelDebug)
	} else {
		log.SetStdoutThreshold(log.LevelInfo)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}
