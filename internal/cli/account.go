package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// credentialFlags はsignupとloginで共通の入力。
type credentialFlags struct {
	identity string
	secret   string
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.identity, "identity", "", "User handle (required)")
	cmd.Flags().StringVar(&f.secret, "secret", "", "Password (required)")
	_ = cmd.MarkFlagRequired("identity")
	_ = cmd.MarkFlagRequired("secret")
}

func (f *credentialFlags) body() map[string]string {
	return map[string]string{"identity": f.identity, "secret": f.secret}
}

func newSignupCmd(a *app) *cobra.Command {
	var f credentialFlags

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result message
			if err := a.client.PostJSON(cmd.Context(), "/signup", f.body(), &result); err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), a.cfg.Output).Print(result)
		},
	}
	f.register(cmd)

	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var f credentialFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the issued token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var result tokenResult
			if err := a.client.PostJSON(cmd.Context(), "/login", f.body(), &result); err != nil {
				return err
			}

			if err := a.cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			return newPrinter(cmd.OutOrStdout(), a.cfg.Output).Print(result)
		},
	}
	f.register(cmd)

	return cmd
}
