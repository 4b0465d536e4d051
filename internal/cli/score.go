package cli

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// errNoToken はトークンなしでスコアを送信しようとしたことを表す。
var errNoToken = errors.New("no token: run `hiscore login` or pass --token")

func newSubmitCmd(a *app) *cobra.Command {
	var (
		level     string
		identity  string
		score     float64
		timestamp string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a high score for the logged-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Token == "" {
				return errNoToken
			}
			if timestamp == "" {
				timestamp = time.Now().UTC().Format(time.RFC3339)
			}

			body := map[string]any{
				"level":     level,
				"identity":  identity,
				"score":     score,
				"timestamp": timestamp,
			}
			var result message
			if err := a.client.PostJSON(a.authContext(cmd.Context()), "/high-scores", body, &result); err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), a.cfg.Output).Print(result)
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Level name (required)")
	cmd.Flags().StringVar(&identity, "identity", "", "Your user handle (required)")
	cmd.Flags().Float64Var(&score, "score", 0, "Score (required)")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "ISO-8601 timestamp (default: now)")
	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("identity")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		level string
		page  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the leaderboard for a level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := url.Values{"level": {level}}
			if cmd.Flags().Changed("page") {
				query.Set("page", strconv.Itoa(page))
			}

			var result []scoreEntry
			if err := a.client.GetJSON(cmd.Context(), "/high-scores", query, &result); err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), a.cfg.Output).Print(result)
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Level name (required)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}
