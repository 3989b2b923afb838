package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reoring/metainfo/field/id"
	"github.com/reoring/metainfo/internal/watch"
	"github.com/reoring/metainfo/report"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Re-validate metainfo files in DIR whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, s, args[0])
		},
	}
	f := cmd.Flags()
	f.StringP("format", "f", "text", "output format: text, json, yaml")
	f.Bool("collect", false, "report every failing field instead of the first")
	f.Duration("debounce", 0, "quiet period before re-validating (default 100ms)")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, s *settings, dir string) error {
	opt, err := s.validateOpt()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	if s.cfg.SuffixList != "" {
		rs, err := id.NewReloadingSuffixes(s.cfg.SuffixList, s.logger)
		if err != nil {
			return err
		}
		opt.Suffixes = rs
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rs.Watch(ctx); err != nil {
				s.logger.Error("suffix list watch stopped", "path", s.cfg.SuffixList, "error", err)
			}
		}()
	}

	var mu sync.Mutex
	emit := func(path string) error {
		r := validateFile(ctx, s, opt, path, os.ReadFile)
		mu.Lock()
		defer mu.Unlock()
		return report.Write(cmd.OutOrStdout(), s.cfg.Format, []report.Result{r})
	}

	existing, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return err
	}
	for _, path := range existing {
		if err := emit(path); err != nil {
			return err
		}
	}

	wcfg := watch.DefaultConfig()
	wcfg.Path = dir
	wcfg.DebounceInterval = s.cfg.Debounce
	w, err := watch.New(wcfg, s.logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	defer w.Stop()
	return w.Watch(ctx, emit)
}
