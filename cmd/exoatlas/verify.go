// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyfold/exoatlas/internal/store"
)

func newVerifyCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the catalog database for corruption",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			mode := "quick"
			if full {
				mode = "full"
			}

			problems, err := store.VerifyIntegrity(cfg.DBPath, mode)
			if err != nil {
				return err
			}
			if len(problems) > 0 {
				for _, p := range problems {
					fmt.Println(p)
				}
				return fmt.Errorf("integrity check reported %d problem(s)", len(problems))
			}

			fmt.Printf("%s: ok (%s check)\n", cfg.DBPath, mode)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "run the exhaustive integrity check")
	return cmd
}
