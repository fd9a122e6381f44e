package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/ledtween/scene"
)

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// newLogger creates a logger writing to w at level, with short timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "ledtween",
		Short:        "ledtween streams tweened colour animations to an LED strip",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			mqtt.ERROR = logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("ledtween %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newStreamCmd())
	root.AddCommand(newSampleCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newStreamCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Stream frames to the strip over MQTT and serve the colour API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(loggerFromContext(cmd.Context()))
			if err := a.readConfig(configPath); err != nil {
				return err
			}
			if err := a.setup(a.newClient()); err != nil {
				return err
			}
			return a.run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "YAML config file")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var (
		scenePath string
		steps     int
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a scene timeline at evenly spaced progress points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(scenePath)
			if err != nil {
				return err
			}
			return sample(cmd.OutOrStdout(), s, steps)
		},
	}
	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "YAML or TOML scene file")
	cmd.Flags().IntVarP(&steps, "steps", "n", 10, "number of intervals to sample")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}

// sample writes steps+1 rows of progress and colour, from 0 to 1 inclusive.
func sample(w io.Writer, s *scene.Scene, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", steps)
	}

	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%s (%s)", s.Name, s.Timeline.TotalDuration())))
	for i := 0; i <= steps; i++ {
		p := float64(i) / float64(steps)
		hex := s.Timeline.Transform(p).Clamped().Hex()
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
		fmt.Fprintf(w, "%s %s %s\n", styleProgress.Render(fmt.Sprintf("%.3f", p)), styleValue.Render(hex), swatch)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ledtween %s (commit %s, built %s)\n", Version, Commit, Date)
		},
	}
}
