package main

import (
	"fmt"

	"backdrop/internal/config"

	"github.com/spf13/cobra"
)

func newInitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with an interactive prompt",
		Long:  `Asks for the background settings and writes them to the --config path, keeping any other values already there.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := config.Load(c.cfgFile)
			if err != nil {
				return err
			}
			if _, err := config.RunWizard(c.cfgFile, base); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", c.cfgFile)
			return nil
		},
	}
}
