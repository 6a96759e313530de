package main

import (
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt...]",
	Short: "Stream plain story text",
	Long:  `Streams a plain-text reply for the prompt. Use "-" to read the prompt from stdin.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	addRequestFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}
	g, release, err := newGenerator()
	if err != nil {
		return err
	}
	defer release()

	out := &progressPrinter{w: cmd.OutOrStdout()}
	h := g.GenerateText(cmd.Context(), req, out.Print)
	_, err = await(cmd.Context(), h)
	out.Finish()
	return taskError(err)
}
