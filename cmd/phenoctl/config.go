package main

import (
	"fmt"

	"github.com/danmuck/phenopackets/internal/config"
	"github.com/spf13/cobra"
)

func getCmdConfig(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the phenoctl config",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(s.stdout, "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := config.Render(s.cfg)
			if err != nil {
				return err
			}
			_, err = s.stdout.Write(out)
			return err
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}
