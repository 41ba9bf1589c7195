package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfguard/dfguard/internal/adapters/outbound/gitinfo"
	"github.com/dfguard/dfguard/internal/adapters/outbound/tui"
	"github.com/dfguard/dfguard/internal/application"
	"github.com/dfguard/dfguard/internal/domain"
)

// ErrWarnings is returned in strict mode when a report carries warnings.
var ErrWarnings = errors.New("validation reported warnings")

func newValidateCmd(v *viper.Viper) *cobra.Command {
	var (
		jsonOutput bool
		strict     bool
		progress   bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file> [file...]",
		Short: "Validate dataset files",
		Long: "Profile each dataset and run every registered rule against it. " +
			"Exits non-zero when a file cannot be read, or with --strict when any report has warnings.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd, v)
			if err != nil {
				return err
			}

			results, err := svc.ValidateFiles(cmd.Context(), args, validateOptions(v, progress && !jsonOutput))
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				renderText(cmd.OutOrStdout(), results, gitinfo.New())
			}

			return outcome(results, strict)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any report has warnings")
	cmd.Flags().BoolVar(&progress, "progress", true, "Show a read progress bar on interactive terminals")

	return cmd
}

type fileErrorJSON struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// renderJSON prints a single report as its document, or an array with one
// entry per file when several were given.
func renderJSON(w io.Writer, results []application.FileReport) error {
	if len(results) == 1 {
		if results[0].Err != nil {
			return nil
		}
		data, err := results[0].Report.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	docs := make([]any, len(results))
	for i, r := range results {
		if r.Err != nil {
			docs[i] = fileErrorJSON{File: r.Path, Error: r.Err.Error()}
			continue
		}
		docs[i] = r.Report
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func renderText(w io.Writer, results []application.FileReport, revisions domain.RevisionLookup) {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		opts := tui.RenderOptions{}
		if hash, err := revisions.CommitHash(r.Path); err == nil {
			opts.Revision = hash
		}
		fmt.Fprint(w, tui.RenderReport(r.Report, opts))
	}
}

// outcome turns per-file failures, and warnings in strict mode, into the
// command error.
func outcome(results []application.FileReport, strict bool) error {
	var errs []error
	warned := false
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, describe(r.Err))
			continue
		}
		if r.Report.HasWarnings() {
			warned = true
		}
	}
	if strict && warned {
		errs = append(errs, ErrWarnings)
	}
	return errors.Join(errs...)
}

// describe phrases load failures the way a user reads them. Sentinel
// errors already name the file.
func describe(err error) error {
	if errors.Is(err, domain.ErrFileNotFound) || errors.Is(err, domain.ErrUnsupportedFormat) {
		return err
	}
	return fmt.Errorf("failed to read file: %w", err)
}
