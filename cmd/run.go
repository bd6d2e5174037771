package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dummysite/internal/app"
)

var (
	runDebug        bool
	runConfigPath   string
	runNamespace    string
	runTemplatePath string
	runScratchDir   string
	runReconnect    bool
)

// runCmd starts the controller and blocks until SIGINT or SIGTERM.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the DummySite controller",
	Long: `Runs the controller against the cluster in the current kubeconfig
context, or the in-cluster service account when running in a pod.

Configuration is read from config.yaml in --config-path, or from
~/.config/dummysite-controller. Flags given on the command line take
precedence over the file.

The process runs until it receives SIGINT or SIGTERM. A watch stream that
ends is not re-opened unless --reconnect is set.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(runDebug, runConfigPath, overridesFromFlags(cmd))

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

// overridesFromFlags returns the flags that were given explicitly.
func overridesFromFlags(cmd *cobra.Command) app.Overrides {
	var overrides app.Overrides
	flags := cmd.Flags()
	if flags.Changed("namespace") {
		overrides.Namespace = &runNamespace
	}
	if flags.Changed("template") {
		overrides.JobTemplatePath = &runTemplatePath
	}
	if flags.Changed("scratch-dir") {
		overrides.ScratchDir = &runScratchDir
	}
	if flags.Changed("reconnect") {
		overrides.Reconnect = &runReconnect
	}
	return overrides
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runDebug, "debug", false, "Enable debug logging")
	runCmd.Flags().StringVar(&runConfigPath, "config-path", "", "Configuration directory (default ~/.config/dummysite-controller)")
	runCmd.Flags().StringVarP(&runNamespace, "namespace", "n", "", "Namespace to watch (default all namespaces)")
	runCmd.Flags().StringVar(&runTemplatePath, "template", "", "Job manifest template file (default built-in template)")
	runCmd.Flags().StringVar(&runScratchDir, "scratch-dir", "", "Directory fetched pages are stored in")
	runCmd.Flags().BoolVar(&runReconnect, "reconnect", false, "Re-open watch streams that end")
}
