package cli

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	metainfo "github.com/reoring/metainfo"
	"github.com/reoring/metainfo/report"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate metainfo files",
		Long:  `Validate one or more metainfo files. Use "-" to read standard input.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			opt, err := s.validateOpt()
			if err != nil {
				return err
			}
			results, err := validateFiles(cmd.Context(), s, opt, args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := report.Write(cmd.OutOrStdout(), s.cfg.Format, results); err != nil {
				return err
			}
			if report.Failed(results) {
				return ErrInvalid
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringP("format", "f", "text", "output format: text, json, yaml")
	f.Bool("collect", false, "report every failing field instead of the first")
	f.IntP("jobs", "j", 0, "files validated concurrently (default GOMAXPROCS)")
	return cmd
}

// validateFiles validates paths concurrently and returns results in argument
// order. Per-file failures become results; only cancellation is an error.
// Standard input is read once, before any worker starts, however many times
// "-" is given.
func validateFiles(ctx context.Context, s *settings, opt metainfo.ValidateOpt, paths []string, stdin io.Reader) ([]report.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	read := os.ReadFile
	if slices.Contains(paths, "-") {
		data, err := io.ReadAll(stdin)
		read = func(path string) ([]byte, error) {
			if path == "-" {
				return data, err
			}
			return os.ReadFile(path)
		}
	}
	results := make([]report.Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = validateFile(ctx, s, opt, path, read)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateFile(ctx context.Context, s *settings, opt metainfo.ValidateOpt, path string, read func(string) ([]byte, error)) report.Result {
	data, err := read(path)
	if err != nil {
		s.logger.Warn("read failed", "file", path, "error", err)
		return report.FromValidation(path, nil, err)
	}
	doc, err := metainfo.NewBytes(data).Validate(ctx, opt)
	if err != nil {
		s.logger.Debug("invalid document", "file", path, "error", err)
	} else {
		s.logger.Debug("valid document", "file", path, "id", doc.ID().String())
	}
	return report.FromValidation(path, doc, err)
}
