package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gdoct/ai-storywriter-sub001/internal/config"
	"github.com/gdoct/ai-storywriter-sub001/provider/endpoints"
	"github.com/spf13/cobra"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the configured endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := endpoints.FromConfig(cfg)
		if err != nil {
			return err
		}
		return listEndpoints(cmd.OutOrStdout(), cfg, registry)
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}

func listEndpoints(w io.Writer, c *config.Config, registry *endpoints.Registry) error {
	for _, name := range registry.Names() {
		entry, err := registry.Lookup(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == c.Endpoint {
			marker = color.GreenString("*")
		}
		model := entry.Model
		if model == "" {
			model = "-"
		}
		fmt.Fprintf(w, "%s %-10s %-32s %s\n", marker, name, entry.BaseURL, model)
	}
	return nil
}
