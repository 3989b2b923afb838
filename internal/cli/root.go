// Package cli implements the metainfo command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	metainfo "github.com/reoring/metainfo"
	"github.com/reoring/metainfo/config"
	"github.com/reoring/metainfo/field/id"
	"github.com/reoring/metainfo/field/license"
	"github.com/reoring/metainfo/internal/logging"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitInvalid = 1 // at least one document failed validation
	ExitUsage   = 2 // bad flags, arguments or configuration
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// ErrInvalid is returned when a document fails validation. The report has
// already been written.
var ErrInvalid = errors.New("validation failed")

// settings is the resolved configuration shared by every subcommand.
type settings struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "metainfo",
		Short: "Validate AppStream metainfo files",
		Long: `metainfo checks AppStream metainfo XML files: the copyright comment,
the reverse-DNS id, names, SPDX licenses, categories, component type and icons.

Exit Codes:
  0  - every file is valid
  1  - at least one file failed validation
  2  - usage or configuration error`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text, json")
	pf.String("suffix-list", "", "public suffix list file replacing the bundled list")
	pf.StringArray("license-ref", nil, "extra license identifier to accept (repeatable)")

	root.AddCommand(newValidateCommand(), newWatchCommand(), newCategoriesCommand())
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalid):
		return ExitInvalid
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsage
	}
}

// loadSettings merges the config file, METAINFO_* variables and flags, in
// increasing precedence.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv("METAINFO_CONFIG")
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	config.ApplyEnv(cfg, os.Getenv)

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("suffix-list") {
		cfg.SuffixList, _ = flags.GetString("suffix-list")
	}
	if flags.Changed("license-ref") {
		refs, _ := flags.GetStringArray("license-ref")
		cfg.LicenseRefs = append(cfg.LicenseRefs, refs...)
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Format = f.Value.String()
	}
	if f := flags.Lookup("collect"); f != nil && f.Changed {
		cfg.Collect, _ = flags.GetBool("collect")
	}
	if n, err := flags.GetInt("jobs"); err == nil && n > 0 {
		cfg.Jobs = n
	}
	if d, err := flags.GetDuration("debounce"); err == nil && d > 0 {
		cfg.Debounce = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Writer:  cmd.ErrOrStderr(),
		Module:  "metainfo",
		Version: Version,
	})
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, logger: logger}, nil
}

// validateOpt builds the library options. A configured suffix list is loaded
// once; watch mode replaces it with a reloading list.
func (s *settings) validateOpt() (metainfo.ValidateOpt, error) {
	opt := metainfo.ValidateOpt{Collect: s.cfg.Collect}
	if s.cfg.SuffixList != "" {
		l, err := id.LoadSuffixFile(s.cfg.SuffixList)
		if err != nil {
			return opt, err
		}
		opt.Suffixes = l
	}
	if len(s.cfg.LicenseRefs) > 0 {
		opt.Licenses = license.DefaultTable().WithCustom(s.cfg.LicenseRefs...)
	}
	return opt, nil
}
