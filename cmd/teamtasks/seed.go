package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func seedCmd(load func() (*runtime, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo developers, projects and tasks into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load()
			if err != nil {
				return err
			}
			defer rt.Close()

			store, err := rt.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			inserted, err := store.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if inserted {
				fmt.Fprintln(cmd.OutOrStdout(), "demo data inserted")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "database already has data, nothing to do")
			}
			return nil
		},
	}
}
