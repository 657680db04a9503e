package main

import (
	"errors"
	"fmt"

	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/format"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
	"github.com/danmuck/phenopackets/pkg/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errInvalidInputs = errors.New("invalid inputs")

type validateCmd struct {
	s        *state
	typeName string
	from     string
	strict   bool
}

func getCmdValidate(s *state) *cobra.Command {
	c := &validateCmd{s: s}
	cmd := &cobra.Command{
		Use:   "validate <input|->...",
		Short: "Check that inputs decode as the given type",
		Long: `Check that every input decodes as the given message type.

  With require_meta_data set in the config, messages that declare a
  meta_data field must carry one and phenopackets must carry an id.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	flags := cmd.Flags()
	flags.StringVarP(&c.typeName, "type", "t", "Phenopacket", "message type, flat or fully qualified")
	flags.StringVar(&c.from, "from", "", "input format (default: from each input name, else json)")
	flags.BoolVar(&c.strict, "strict", false, "reject unknown JSON keys regardless of the config")
	return cmd
}

func (c *validateCmd) run(_ *cobra.Command, args []string) error {
	desc, err := c.s.messageType(c.typeName)
	if err != nil {
		return err
	}
	codec := c.s.codec()
	if c.strict {
		codec.JSONIn.RejectUnknown = true
	}

	failed := 0
	for _, path := range args {
		if err := c.check(codec, desc, path); err != nil {
			failed++
			fmt.Fprintf(c.s.stdout, "FAIL %s: %v\n", path, err)
			log.Debug().Err(err).Str("input", path).Msg("validate failed")
			continue
		}
		fmt.Fprintf(c.s.stdout, "ok   %s (%s)\n", path, desc.FullName())
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidInputs, failed, len(args))
	}
	return nil
}

func (c *validateCmd) check(codec *format.Codec, desc *registry.MessageDescriptor, path string) error {
	f, err := pickFormat(c.from, path, format.JSON, true)
	if err != nil {
		return err
	}
	data, err := c.s.readInput(path)
	if err != nil {
		return err
	}
	m, err := codec.Decode(f, data, desc)
	if err != nil {
		return err
	}
	if err := dynamic.CheckOneofs(m); err != nil {
		return err
	}
	if c.s.cfg.RequireMetaData {
		return wellFormed(m)
	}
	return nil
}

func wellFormed(m *dynamic.Message) error {
	desc := m.Descriptor()
	if desc == v2.PhenopacketDesc {
		return v2.CheckWellFormed(dynamic.Load[v2.Phenopacket](m))
	}
	if _, ok := desc.FieldByName("meta_data"); ok && !m.HasField("meta_data") {
		return fmt.Errorf("%s: %w", desc.FullName(), v2.ErrMissingMetaData)
	}
	return nil
}
