package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge <opponent>",
		Short: "Challenge a named player to a game (you play black)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"opponent": args[0]}
			var result Game

			if err := client.Post("/api/v1/match", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameResignCmd())

	return cmd
}

func newGameShowCmd() *cobra.Command {
	var since int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your active game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameView

			path := "/api/v1/game"
			if since >= 0 {
				path = withQuery(path, "since", since)
			}

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&since, "since", -1, "Only report moves after this move count")

	return cmd
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <row> <col>",
		Short: "Place a piece at the given coordinate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row: %w", err)
			}

			col, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			req := map[string]int{"row": row, "col": col}
			var result MoveResult

			if err := client.Post("/api/v1/game/move", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resign",
		Short: "Concede your active game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post("/api/v1/game/resign", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// withQuery appends an integer query parameter to a path
func withQuery(path, key string, value int) string {
	return fmt.Sprintf("%s?%s=%d", path, key, value)
}
