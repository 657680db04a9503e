package main

import (
	"bytes"

	"github.com/danmuck/phenopackets/pkg/format"
	"github.com/spf13/cobra"
)

type convertCmd struct {
	s        *state
	typeName string
	from     string
	to       string
	output   string
}

func getCmdConvert(s *state) *cobra.Command {
	c := &convertCmd{s: s}
	cmd := &cobra.Command{
		Use:   "convert <input|->",
		Short: "Convert a message between json, yaml and binary",
		Example: `
  # JSON to YAML, formats taken from the file names.
  phenoctl convert -o case.yaml case.json

  # Binary family on stdin to indented JSON on stdout.
  phenoctl convert --type Family --from binary --to json - < family.pb`[1:],
		Args: cobra.ExactArgs(1),
		RunE: c.run,
	}
	flags := cmd.Flags()
	flags.StringVarP(&c.typeName, "type", "t", "Phenopacket", "message type, flat or fully qualified")
	flags.StringVar(&c.from, "from", "", "input format (default: from the input name, else json)")
	flags.StringVar(&c.to, "to", "", "output format (default: from the output name, else json)")
	flags.StringVarP(&c.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *convertCmd) run(_ *cobra.Command, args []string) error {
	desc, err := c.s.messageType(c.typeName)
	if err != nil {
		return err
	}
	from, err := pickFormat(c.from, args[0], format.JSON, true)
	if err != nil {
		return err
	}
	to, err := pickFormat(c.to, c.output, format.JSON, true)
	if err != nil {
		return err
	}
	in, err := c.s.readInput(args[0])
	if err != nil {
		return err
	}
	out, err := c.s.codec().Convert(from, to, in, desc)
	if err != nil {
		return err
	}
	if to != format.Binary && !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return c.s.writeOutput(c.output, out)
}
