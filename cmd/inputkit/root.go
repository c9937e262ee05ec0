package main

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clive/inputkit/internal/config"
	"github.com/clive/inputkit/internal/field"
	"github.com/clive/inputkit/internal/formspec"
	"github.com/clive/inputkit/internal/logging"
	"github.com/clive/inputkit/internal/tui"
	"github.com/spf13/cobra"
)

const firstRunNotice = "No saved config yet. Values are remembered after submit."

type rootOptions struct {
	form    string
	variant string
	debug   bool
	logFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "inputkit",
		Short: "Fill in a form in the terminal",
		Long: `inputkit renders a form of text boxes, text areas and dropdowns and prints
the submitted values as JSON.

Without --form the built-in issue tracker setup form is shown.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.form, "form", "f", "", "form spec YAML file")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "variant for every field (standard, outlined, filled)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "debug logging and event panel")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "log file (default ~/.inputkit/logs/inputkit.log)")

	cmd.AddCommand(newValidateCmd())
	return cmd
}

// loadSpec returns the form from path, or the built-in form, with an optional variant applied to every field
func loadSpec(path, variant string) (*formspec.Spec, error) {
	spec := formspec.Default()
	if path != "" {
		var err error
		if spec, err = formspec.Load(path); err != nil {
			return nil, err
		}
	}
	if variant != "" {
		if _, err := field.ParseVariant(variant); err != nil {
			return nil, fmt.Errorf("--variant: %w", err)
		}
		for i := range spec.Fields {
			spec.Fields[i].Variant = variant
		}
	}
	return spec, nil
}

func runForm(out io.Writer, opts *rootOptions) error {
	spec, err := loadSpec(opts.form, opts.variant)
	if err != nil {
		return err
	}

	firstRun := !config.Exists()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Debug = cfg.Debug || opts.debug

	logPath := opts.logFile
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if logPath == "" {
		if logPath, err = config.DefaultLogPath(); err != nil {
			return err
		}
	}
	logger, closer := logging.New(logging.Options{Path: logPath, Debug: cfg.Debug})
	defer closer.Close()

	logger.Info("starting form", "title", spec.Title, "fields", len(spec.Fields), "first_run", firstRun)
	model := tui.NewRootModel(spec, cfg, logger)
	if firstRun {
		model = model.WithNotice(firstRunNotice)
	}
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}

	m, ok := final.(tui.Model)
	if !ok || !m.Submitted() {
		logger.Info("form cancelled")
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(m.Values())
}
