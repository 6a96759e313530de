package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [prompt...]",
	Short: "Request a reply without streaming",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runComplete,
}

func init() {
	addRequestFlags(completeCmd)
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}
	g, release, err := newGenerator()
	if err != nil {
		return err
	}
	defer release()

	text, err := await(cmd.Context(), g.Complete(cmd.Context(), req))
	if err != nil {
		return taskError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
