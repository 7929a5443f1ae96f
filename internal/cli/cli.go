// Package cli holds shaderpad's command line: flags, config merging and the
// harness subcommand. Opening the window is left to the caller.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/irfansharif/shaderpad/internal/config"
	"github.com/irfansharif/shaderpad/internal/harness"
)

// Exit codes owned by the command line. The window and GL stages use 1-4.
const (
	ExitConfig = 5  // unreadable or invalid configuration, unreadable shader
	ExitUsage  = 64 // bad flags or arguments
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

type flags struct {
	config      string
	width       int
	height      int
	vsync       bool
	glslVersion string
	noWatch     bool
}

// NewRootCmd returns the shaderpad command. run is called with the merged
// configuration; a returned *ExitError sets the exit code.
func NewRootCmd(run func(config.Config) error) *cobra.Command {
	var f flags
	rootCmd := &cobra.Command{
		Use:   "shaderpad [file.glsl]",
		Short: "Live GLSL fragment shader previewer",
		Long: `shaderpad renders a Shadertoy-style fragment shader (a mainImage function)
and recompiles it whenever the file is saved, or on Ctrl+S in the window.
Compile errors are reported against the lines of your file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&f.config, "config", "", "path to a TOML config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&f.glslVersion, "glsl-version", "", "#version line for the harness (default \""+harness.DefaultVersion+"\")")
	rootCmd.Flags().IntVar(&f.width, "width", 0, "initial window width")
	rootCmd.Flags().IntVar(&f.height, "height", 0, "initial window height")
	rootCmd.Flags().BoolVar(&f.vsync, "vsync", true, "sync buffer swaps to the display")
	rootCmd.Flags().BoolVar(&f.noWatch, "no-watch", false, "don't recompile when the file changes on disk")

	rootCmd.AddCommand(newHarnessCmd(&f))
	return rootCmd
}

// Execute runs cmd and returns the process exit code.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	log.Printf("ERROR: %v", err)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// loadConfig merges the config file with flags that were set explicitly.
func loadConfig(cmd *cobra.Command, f flags, args []string) (config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return config.Config{}, &ExitError{Code: ExitConfig, Err: fmt.Errorf("loading config: %w", err)}
	}
	if len(args) == 1 {
		cfg.Shader.Path = args[0]
	}
	if cmd.Flags().Changed("width") {
		cfg.Window.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Window.Height = f.height
	}
	if cmd.Flags().Changed("vsync") {
		cfg.Window.VSync = f.vsync
	}
	if cmd.Flags().Changed("glsl-version") {
		cfg.Shader.GLSLVersion = f.glslVersion
	}
	if f.noWatch {
		cfg.Shader.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, &ExitError{Code: ExitConfig, Err: fmt.Errorf("invalid configuration: %w", err)}
	}
	return cfg, nil
}

// newHarnessCmd prints the fragment prologue with line numbers, which is
// what compiler line numbers are offset by.
func newHarnessCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "harness",
		Short: "Print the fragment shader prologue user code is compiled after",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *f, nil)
			if err != nil {
				return err
			}
			writeHarness(cmd.OutOrStdout(), harness.New(cfg.Shader.GLSLVersion))
			return nil
		},
	}
}

func writeHarness(out io.Writer, h *harness.Harness) {
	fmt.Fprintf(out, "version: %s\n", h.Version())
	for _, u := range h.Uniforms() {
		fmt.Fprintf(out, "uniform %-5s %-12s %s\n", u.Type, u.Name, u.Doc)
	}
	fmt.Fprintln(out)
	for i, line := range strings.Split(strings.TrimSuffix(h.Prologue(), "\n"), "\n") {
		fmt.Fprintf(out, "%3d | %s\n", i+1, line)
	}
	fmt.Fprintf(out, "user code starts on line %d\n", h.PrologueLines()+1)
}
