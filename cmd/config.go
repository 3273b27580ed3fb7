package cmd

import (
	"fmt"
	"os"

	"berkotech.co/particlecorr/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or write particlecorr configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", c.Input)
		fmt.Fprintf(out, "output: %s\n", c.Output)
		if c.HeatMapOutput != "" {
			fmt.Fprintf(out, "heatmap_output: %s\n", c.HeatMapOutput)
		}
		if c.Report != "" {
			fmt.Fprintf(out, "report: %s\n", c.Report)
		}
		fmt.Fprintf(out, "drop: %v\n", c.Drop)
		fmt.Fprintf(out, "filter: %s <= %g\n", c.FilterColumn, c.Threshold)
		fmt.Fprintf(out, "preview_rows: %d\n", c.PreviewRows)
		fmt.Fprintf(out, "show: %t\n", c.Show)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "particlecorr.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		c, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		if err := config.Save(c, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
