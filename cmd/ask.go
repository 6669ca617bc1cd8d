package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/baba/internal/session"
)

const defaultCLISession = "cli"

var askCmd = &cobra.Command{
	Use:   "ask <text>",
	Short: "Send one message to the tutor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("session")

		svc, err := openServices(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		sess, err := session.GetOrCreate(ctx, svc.repo, id)
		if err != nil {
			return err
		}

		res := svc.router.Route(ctx, strings.Join(args, " "), sess)
		if err := svc.repo.Save(ctx, sess); err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer <question-index> <option-index>",
	Short: "Answer a question from the session's last quiz",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var qi, ai int
		if _, err := fmt.Sscanf(args[0], "%d", &qi); err != nil {
			return fmt.Errorf("invalid question index %q: %w", args[0], err)
		}
		if _, err := fmt.Sscanf(args[1], "%d", &ai); err != nil {
			return fmt.Errorf("invalid option index %q: %w", args[1], err)
		}
		id, _ := cmd.Flags().GetString("session")

		svc, err := openServices(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		sess, err := svc.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if sess.LastQuiz == nil {
			return fmt.Errorf("session %s has no quiz yet", id)
		}

		res := svc.router.CheckQuizAnswer(sess, qi, ai, nil)
		if err := svc.repo.Save(ctx, sess); err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func init() {
	askCmd.Flags().StringP("session", "s", defaultCLISession, "Conversation session ID")
	answerCmd.Flags().StringP("session", "s", defaultCLISession, "Conversation session ID")
}
