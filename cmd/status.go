package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"dummysite/internal/app"
	"dummysite/internal/client"
	"dummysite/internal/formatting"
	"dummysite/pkg/logging"
)

var (
	statusNamespace string
	statusOutput    string
	statusQuiet     bool
	statusNoColor   bool
)

// statusCmd lists DummySites with the Job scheduled for each of them.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show DummySites and their Jobs",
	Long: `Lists the DummySites in the cluster and reports for each one whether a
Job has been scheduled, how that Job is doing and whether page content
has been written to spec.html.

Examples:
  dummysite-controller status
  dummysite-controller status -n sites --output json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseOutputFormat(statusOutput)
	if err != nil {
		return err
	}

	// Keep stdout for the report
	logging.InitForCLI(logging.LevelWarn, os.Stderr)

	k8sClient, err := app.NewClusterClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	options := formatting.Options{
		Format: format,
		Quiet:  statusQuiet,
		Color:  !statusNoColor && format != formatting.FormatJSON && format != formatting.FormatYAML,
	}
	return renderStatus(ctx, k8sClient, statusNamespace, options, cmd.OutOrStdout())
}

// renderStatus collects the status and writes it to out in the requested format.
// A spinner is shown on stderr while collecting unless quiet.
func renderStatus(ctx context.Context, c client.SiteClient, namespace string, options formatting.Options, out io.Writer) error {
	var s *spinner.Spinner
	if !options.Quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Collecting DummySite status..."
		s.Start()
	}

	statuses, err := app.CollectSiteStatus(ctx, c, namespace)
	if s != nil {
		if err != nil {
			s.FinalMSG = text.FgRed.Sprint("Failed to collect DummySite status") + "\n"
		}
		s.Stop()
	}
	if err != nil {
		return err
	}

	rendered, err := formatting.NewFactory().CreateFormatter(options).FormatSites(statuses)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusNamespace, "namespace", "n", "", "Namespace to list (default all namespaces)")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", string(formatting.FormatTable), "Output format: table, console, json or yaml")
	statusCmd.Flags().BoolVarP(&statusQuiet, "quiet", "q", false, "Suppress the progress spinner and decorations")
	statusCmd.Flags().BoolVar(&statusNoColor, "no-color", false, "Disable colored output")
}
