package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gilliss/gamma-atten/internal/service/runner"
	"github.com/gilliss/gamma-atten/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// dataDir overrides the absorber data directory from the settings file.
	dataDir string
	// logLevel overrides the diagnostics level from the settings file.
	logLevel string

	// rootCmd represents the base command for running attenuation scripts.
	rootCmd = &cobra.Command{
		Use:   "gamma-atten <script>",
		Short: "Compute gamma-ray attenuation through layered shielding.",
		Long: `Gamma-ray shielding calculator driven by an instruction script.

The script sets the beam energy and stacks absorber layers, one per line:

  Gamma(keV): 1000
  Shield(type,cm): Lead,1.0

Each layer's mass attenuation coefficient is taken from the absorber's data
file (Data/<Absorber>Data.txt, NIST X-ray mass attenuation table format) at
the tabulated energy nearest the beam energy, and the transmitted intensity
follows the Beer-Lambert law. The remaining intensity after each layer is
logged, and a summary table is printed at the end of the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Abort between instructions on Ctrl-C.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			runnerOptions := &runner.Options{
				ScriptPath: args[0],
				ConfigPath: configPath,
				DataDir:    dataDir,
				LogLevel:   logLevel,
			}

			_, err := runner.Run(ctx, runnerOptions)

			return err
		},
	}
)

// Execute runs the gamma-atten CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "absorber data directory (overrides settings)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "diagnostics level: debug, info, warn, error, fatal")
}
