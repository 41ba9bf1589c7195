package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dfguard/dfguard/internal/adapters/outbound/gitinfo"
	"github.com/dfguard/dfguard/internal/adapters/outbound/tui"
	"github.com/dfguard/dfguard/internal/adapters/outbound/watcher"
	"github.com/dfguard/dfguard/internal/domain"
)

func newWatchCmd(v *viper.Viper) *cobra.Command {
	var (
		jsonOutput bool
		debounce   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <file> [file...]",
		Short: "Re-validate datasets whenever they change",
		Long:  "Validate each dataset once, then again after every write to it, until interrupted.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, logger, err := newService(cmd, v)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			var revisions domain.RevisionLookup = gitinfo.New()
			opts := validateOptions(v, false)

			validate := func(path string) {
				report, err := svc.ValidateFile(ctx, path, opts)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", describe(err))
					return
				}
				if jsonOutput {
					data, err := report.ToJSON()
					if err != nil {
						logger.WithError(err).Error("encoding report")
						return
					}
					fmt.Fprintln(out, string(data))
					return
				}
				ro := tui.RenderOptions{}
				if hash, err := revisions.CommitHash(path); err == nil {
					ro.Revision = hash
				}
				fmt.Fprint(out, tui.RenderReport(report, ro))
			}

			w, err := watcher.New(debounce)
			if err != nil {
				return err
			}
			defer w.Close()
			for _, path := range args {
				if err := w.Add(path); err != nil {
					return err
				}
			}
			w.OnChange = validate
			w.OnError = func(err error) {
				logger.WithError(err).Warn("watch error")
			}

			for _, path := range args {
				validate(path)
			}

			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports as JSON")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period after a write before re-validating")

	return cmd
}
