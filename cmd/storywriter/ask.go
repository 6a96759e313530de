package main

import (
	"fmt"

	"github.com/fatih/color"
	storywriter "github.com/gdoct/ai-storywriter-sub001"
	"github.com/gdoct/ai-storywriter-sub001/partial"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask for an answer with follow-up questions",
	Long: `Asks for a JSON reply with an answer and follow-up questions. The answer is
printed while it streams, the follow-up questions once the reply is complete.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	addRequestFlags(askCmd)
	askCmd.Flags().Bool("schema", false, "send the answer schema as response_format")
	askCmd.Flags().Bool("dump", false, "dump the resolved answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}
	if withSchema, _ := cmd.Flags().GetBool("schema"); withSchema {
		req = req.WithResponseSchema(storywriter.StructuredAnswerOutput())
	}

	g, release, err := newGenerator()
	if err != nil {
		return err
	}
	defer release()

	w := cmd.OutOrStdout()
	out := &progressPrinter{w: w}
	h := g.GenerateStructured(cmd.Context(), req, out.Print)
	answer, err := await(cmd.Context(), h)
	out.Finish()
	if err != nil {
		return taskError(err)
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		_, err := pp.Fprintln(w, answer)
		return err
	}
	printFollowUps(cmd, answer)
	return nil
}

func printFollowUps(cmd *cobra.Command, answer partial.StructuredAnswer) {
	if len(answer.FollowUpQuestions) == 0 {
		return
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.CyanString("Follow-up questions:"))
	for i, q := range answer.FollowUpQuestions {
		fmt.Fprintf(w, "  %s %s\n", color.YellowString("%d.", i+1), q)
	}
}
