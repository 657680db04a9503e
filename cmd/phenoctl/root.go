package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/phenopackets/internal/config"
	"github.com/danmuck/phenopackets/internal/logging"
	"github.com/danmuck/phenopackets/internal/store"
	"github.com/danmuck/phenopackets/pkg/catalog"
	"github.com/danmuck/phenopackets/pkg/compat"
	"github.com/danmuck/phenopackets/pkg/format"
	"github.com/danmuck/phenopackets/pkg/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// state is shared by every subcommand of one invocation.
type state struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	cfg     config.Config
	catalog *catalog.Catalog
}

func newState(stdin io.Reader, stdout, stderr io.Writer) *state {
	return &state{stdin: stdin, stdout: stdout, stderr: stderr, cfg: config.Default()}
}

func newRootCommand(s *state) *cobra.Command {
	root := &cobra.Command{
		Use:               "phenoctl",
		Short:             "Convert, validate and store GA4GH phenopackets",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.persistentPreRunE,
	}
	root.SetIn(s.stdin)
	root.SetOut(s.stdout)
	root.SetErr(s.stderr)
	root.PersistentFlags().AddFlagSet(s.persistentFlagSet())

	root.AddCommand(
		getCmdConvert(s),
		getCmdValidate(s),
		getCmdResolve(s),
		getCmdStore(s),
		getCmdConfig(s),
	)
	return root
}

func (s *state) persistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringVarP(&s.configPath, "config", "c", "", "config file (defaults to $"+config.EnvConfigPath+")")
	flags.StringVar(&s.logLevel, "log-level", "", "log level: trace|debug|info|warn|error|off")
	return flags
}

func (s *state) persistentPreRunE(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = s.logLevel
	}
	if !logging.SetLevel(cfg.LogLevel) {
		return fmt.Errorf("%w: log level %q", config.ErrInvalid, cfg.LogLevel)
	}
	s.cfg = cfg

	s.catalog, err = catalog.Load()
	if err != nil {
		return err
	}
	log.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", s.configPath).
		Int("types", s.catalog.Types.Len()).
		Msg("phenoctl start")
	return nil
}

func (s *state) codec() *format.Codec {
	return s.cfg.ApplyCodec(format.New(s.catalog.Types))
}

// messageType resolves a user supplied type name in the flat namespace.
func (s *state) messageType(name string) (*registry.MessageDescriptor, error) {
	return s.catalog.Message(name, compat.Flat)
}

func (s *state) openStore() (*store.Store, error) {
	return store.Open(s.cfg.StorePath, s.catalog.Types, s.codec().BinaryIn)
}

// readInput reads path, or stdin for "-".
func (s *state) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(s.stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or stdout when path is empty or "-".
func (s *state) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := s.stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var errFormat = errors.New("cannot tell the format")

// pickFormat returns the flag value when set, then the format implied by
// path, then def.
func pickFormat(flag, path string, def format.Format, hasDefault bool) (format.Format, error) {
	if flag != "" {
		return format.Parse(flag)
	}
	if f, ok := format.FromPath(path); ok {
		return f, nil
	}
	if hasDefault {
		return def, nil
	}
	return 0, fmt.Errorf("%w of %q, use a flag", errFormat, path)
}
