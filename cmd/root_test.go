package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if GetVersion() != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "dummysite-controller" {
		t.Errorf("Expected Use to be 'dummysite-controller', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "dummysite-controller version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	expected := "dummysite-controller version 1.0.0\n"
	if buf.String() != expected {
		t.Errorf("Expected version output %q, got %q", expected, buf.String())
	}
}

func TestSubcommands(t *testing.T) {
	foundCommands := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range []string{"version", "run", "status"} {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestRunCommandFlags(t *testing.T) {
	for _, name := range []string{"debug", "config-path", "namespace", "template", "scratch-dir", "reconnect"} {
		if runCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s to be registered", name)
		}
	}

	if err := runCmd.Args(runCmd, []string{"extra"}); err == nil {
		t.Error("Expected run to reject positional arguments")
	}
}

func TestOverridesFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	var namespace, scratchDir string
	var reconnect bool
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "")
	cmd.Flags().String("template", "", "")
	cmd.Flags().StringVar(&scratchDir, "scratch-dir", "", "")
	cmd.Flags().BoolVar(&reconnect, "reconnect", false, "")

	if err := cmd.ParseFlags([]string{"-n", "sites", "--reconnect"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	overrides := overridesFromFlags(cmd)
	if overrides.Namespace == nil {
		t.Error("Expected namespace override to be set")
	}
	if overrides.Reconnect == nil {
		t.Error("Expected reconnect override to be set")
	}
	if overrides.JobTemplatePath != nil {
		t.Error("Expected template override to be unset")
	}
	if overrides.ScratchDir != nil {
		t.Error("Expected scratch-dir override to be unset")
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer
	testRootCmd := &cobra.Command{
		Use:          rootCmd.Use,
		Short:        rootCmd.Short,
		Long:         rootCmd.Long,
		SilenceUsage: true,
	}

	testRootCmd.SetOut(&buf)
	testRootCmd.SetArgs([]string{"--help"})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "dummysite-controller") {
		t.Errorf("Help output should contain 'dummysite-controller'. Got: %q", output)
	}
	if !strings.Contains(output, "DummySite resources") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}
