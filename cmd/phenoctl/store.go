package main

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/danmuck/phenopackets/internal/store"
	"github.com/danmuck/phenopackets/pkg/format"
	"github.com/spf13/cobra"
)

type storeCmd struct {
	s        *state
	typeName string
	from     string
	to       string
	output   string
	all      bool
}

func getCmdStore(s *state) *cobra.Command {
	c := &storeCmd{s: s}
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep messages in the local packet store",
		Long: `Keep messages in the local SQLite packet store.

  Messages are stored in the binary format, keyed by type and id. The
  database location comes from store_path in the config.`,
	}
	cmd.PersistentFlags().StringVarP(&c.typeName, "type", "t", "Phenopacket", "message type, flat or fully qualified")

	put := &cobra.Command{
		Use:   "put <input|->...",
		Short: "Store messages under their id",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.put,
	}
	put.Flags().StringVar(&c.from, "from", "", "input format (default: from each input name, else json)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored message",
		Args:  cobra.ExactArgs(1),
		RunE:  c.get,
	}
	get.Flags().StringVar(&c.to, "to", "", "output format (default: from the output name, else json)")
	get.Flags().StringVarP(&c.output, "output", "o", "", "output file (default: stdout)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored messages",
		Args:  cobra.NoArgs,
		RunE:  c.list,
	}
	list.Flags().BoolVar(&c.all, "all", false, "list every type, not only --type")

	del := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Remove stored messages",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.delete,
	}

	cmd.AddCommand(put, get, list, del)
	return cmd
}

func (c *storeCmd) withStore(fn func(ctx context.Context, st *store.Store) error) error {
	st, err := c.s.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(context.Background(), st)
}

func (c *storeCmd) put(_ *cobra.Command, args []string) error {
	desc, err := c.s.messageType(c.typeName)
	if err != nil {
		return err
	}
	codec := c.s.codec()
	return c.withStore(func(ctx context.Context, st *store.Store) error {
		for _, path := range args {
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
				return fmt.Errorf("%s: %w", path, err)
			}
			if c.s.cfg.RequireMetaData {
				if err := wellFormed(m); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			id, err := st.Put(ctx, m)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(c.s.stdout, "stored %s %s\n", desc.FullName(), id)
		}
		return nil
	})
}

func (c *storeCmd) get(_ *cobra.Command, args []string) error {
	desc, err := c.s.messageType(c.typeName)
	if err != nil {
		return err
	}
	to, err := pickFormat(c.to, c.output, format.JSON, true)
	if err != nil {
		return err
	}
	return c.withStore(func(ctx context.Context, st *store.Store) error {
		m, err := st.Get(ctx, desc, args[0])
		if err != nil {
			return err
		}
		out, err := c.s.codec().Encode(to, m)
		if err != nil {
			return err
		}
		if to != format.Binary && !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, '\n')
		}
		return c.s.writeOutput(c.output, out)
	})
}

func (c *storeCmd) list(_ *cobra.Command, _ []string) error {
	typeName := ""
	if !c.all {
		desc, err := c.s.messageType(c.typeName)
		if err != nil {
			return err
		}
		typeName = desc.FullName()
	}
	return c.withStore(func(ctx context.Context, st *store.Store) error {
		entries, err := st.List(ctx, typeName)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.s.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tBYTES\tUPDATED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.ID, e.Type, e.Size, e.UpdatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	})
}

func (c *storeCmd) delete(_ *cobra.Command, args []string) error {
	desc, err := c.s.messageType(c.typeName)
	if err != nil {
		return err
	}
	return c.withStore(func(ctx context.Context, st *store.Store) error {
		for _, id := range args {
			if err := st.Delete(ctx, desc, id); err != nil {
				return err
			}
			fmt.Fprintf(c.s.stdout, "deleted %s %s\n", desc.FullName(), id)
		}
		return nil
	})
}
