// Package cli はリーダーボードサーバーを操作するhiscoreコマンドを提供する。
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/hiscore/pkg/httpclient"
)

// app はサブコマンド間で共有する設定とクライアント。
type app struct {
	cfg    *Config
	client *httpclient.Client
}

// authContext はトークンを付与したコンテキストを返す。
func (a *app) authContext(ctx context.Context) context.Context {
	return httpclient.WithToken(ctx, a.cfg.Token)
}

// NewRootCmd はhiscoreのルートコマンドを生成する。
func NewRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "hiscore",
		Short: "CLI client for the hiscore leaderboard service",
		Long: `hiscore talks to a running leaderboard service.

Log in once to store a token, then submit scores and browse
the leaderboard page by page.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Output != outputText && a.cfg.Output != outputJSON {
				return fmt.Errorf("--output must be %q or %q", outputText, outputJSON)
			}
			if err := a.cfg.LoadToken(); err != nil {
				return err
			}
			a.client = httpclient.New(a.cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfg.ServerURL, "server", a.cfg.ServerURL, "Server URL (env: HISCORE_SERVER)")
	flags.StringVar(&a.cfg.Token, "token", a.cfg.Token, "Bearer token (env: HISCORE_TOKEN)")
	flags.StringVar(&a.cfg.TokenFile, "token-file", a.cfg.TokenFile, "Token file path (env: HISCORE_TOKEN_FILE)")
	flags.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newSignupCmd(a))
	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newSubmitCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))

	return rootCmd
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result healthResult
			if err := a.client.GetJSON(cmd.Context(), "/health", nil, &result); err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), a.cfg.Output).Print(result)
		},
	}
}
