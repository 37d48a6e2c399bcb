package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-parser/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API token for the REST server",
	Long:  "Signs an HS256 bearer token with the configured jwt_secret (JWT_SECRET) for the /resumes endpoints.",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Name of the client the token is for (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default: token_ttl config, 24h)")

	if err := tokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	tokenCfg := *cfg
	if tokenTTL > 0 {
		tokenCfg.TokenTTL = tokenTTL
	}

	jwtConfig, err := tokenCfg.JWT()
	if err != nil {
		return err
	}
	if jwtConfig == nil {
		return fmt.Errorf("JWT_SECRET environment variable (or jwt_secret config) is required")
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
