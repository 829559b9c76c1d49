package cli

import (
	"github.com/spf13/cobra"
)

func newNameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Display name commands",
	}

	cmd.AddCommand(newNameSetCmd())
	cmd.AddCommand(newNameShowCmd())

	return cmd
}

func newNameSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Claim a display name (required before playing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result Profile

			if err := client.Post("/api/v1/profile", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newNameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Profile

			if err := client.Get("/api/v1/profile", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players by score",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			path := "/api/v1/leaderboard"
			if n > 0 {
				path = withQuery(path, "n", n)
			}

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 0, "How many players to show")

	return cmd
}
