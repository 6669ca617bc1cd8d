package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/baba/internal/config"
	"github.com/abhisek/baba/internal/session"
	"github.com/abhisek/baba/internal/tutor"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and reset conversation sessions",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a session and its quiz performance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openStorage(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		sess, err := svc.repo.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{
			"session":     sess,
			"performance": tutor.Analyze(sess),
		})
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear <id>",
	Short: "Reset a session to its empty state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openStorage(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		sess, err := svc.repo.Get(ctx, args[0])
		if err != nil {
			return err
		}
		sess.Clear()
		if err := svc.repo.Save(ctx, sess); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s cleared.\n", sess.ID)
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions stored in the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, err := openStorage(cmd, true)
		if err != nil {
			return err
		}
		defer svc.Close()

		if svc.cfg.SessionStore != config.StoreSQLite {
			return fmt.Errorf("listing is only supported for the sqlite session store")
		}

		recs, err := svc.store.SessionRepo().ListSessions(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-38s  %-19s  %6s  %8s\n", "ID", "Updated", "Turns", "Attempts")
		fmt.Fprintln(out, strings.Repeat("─", 78))
		for _, rec := range recs {
			sess, err := session.Decode(rec.Data)
			if err != nil {
				fmt.Fprintf(out, "%-38s  (unreadable: %v)\n", rec.ID, err)
				continue
			}
			fmt.Fprintf(out, "%-38s  %-19s  %6d  %8d\n",
				truncate(rec.ID, 38),
				rec.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
				sess.InteractionCount,
				len(sess.QuizHistory),
			)
		}
		return nil
	},
}

func init() {
	sessionListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")

	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	sessionCmd.AddCommand(sessionListCmd)
}
