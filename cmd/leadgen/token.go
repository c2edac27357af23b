package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development session token",
	Long: `Sign a session token with JWT_SECRET for local development and testing.
Production tokens are issued by the identity provider.`,
	RunE: runToken,
}

var tokenUser string

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User ID to put in the token subject (default: a random UUID)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	userID := uuid.New()
	if tokenUser != "" {
		userID, err = uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(userID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
