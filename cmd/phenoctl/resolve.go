package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/danmuck/phenopackets/pkg/compat"
	"github.com/spf13/cobra"
)

type resolveCmd struct {
	s         *state
	namespace string
	list      bool
}

func getCmdResolve(s *state) *cobra.Command {
	c := &resolveCmd{s: s}
	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve type names to their registered definitions",
		Example: `
  phenoctl resolve Phenopacket VitalStatus.Status
  phenoctl resolve --namespace versioned org.phenopackets.schema.v2.core.Disease
  phenoctl resolve --list`[1:],
		RunE: c.run,
	}
	flags := cmd.Flags()
	flags.StringVarP(&c.namespace, "namespace", "n", "flat", "lookup hint: flat|versioned")
	flags.BoolVar(&c.list, "list", false, "print the whole flat alias table")
	return cmd
}

func (c *resolveCmd) run(_ *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(c.s.stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if c.list {
		for _, a := range c.s.catalog.Resolver.Aliases() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Flat, a.Handle.Name, kind(a.Handle))
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("resolve: no names given")
	}
	ns, err := compat.ParseNamespace(c.namespace)
	if err != nil {
		return err
	}
	for _, name := range args {
		h, err := c.s.catalog.Resolve(name, ns)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, h.Name, kind(h))
	}
	return nil
}

func kind(h compat.Handle) string {
	if h.IsEnum() {
		return "enum"
	}
	return "message"
}
