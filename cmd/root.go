package cmd

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the controller.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dummysite-controller",
	Short: "Serve a copy of a website for every DummySite resource",
	Long: `dummysite-controller watches DummySite resources in a Kubernetes cluster.
For each new DummySite it schedules a Job, fetches the page named by
spec.website_url and writes the page text into spec.html. When the Job
succeeds the DummySite is deleted, and deleting a DummySite removes its
Jobs and their pods.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "dummysite-controller version %s\n" .Version}}`)
	rootCmd.AddCommand(newVersionCmd())

	// controller-runtime registers --kubeconfig on the standard flag set
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}
