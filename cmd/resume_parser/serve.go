package main

import (
	"fmt"

	"github.com/jonathan/resume-parser/internal/logging"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server exposing the experience calculator and, when configured, " +
		"resume upload (needs GEMINI_API_KEY) and storage (needs DATABASE_URL).",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.Component("serve")

	serverCfg := *cfg
	if cmd.Flags().Changed("port") {
		serverCfg.Port = servePort
	}

	var store server.ResumeStore
	if cfg.DatabaseURL != "" {
		database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		store = database
	} else {
		log.Warnw("DATABASE_URL not set; resumes will not be saved")
	}

	var parser server.ResumeParser
	if cfg.APIKey != "" {
		client, err := newLLMClient(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		parser = parsing.NewParser(client)
	} else {
		log.Warnw("GEMINI_API_KEY not set; resume uploads are disabled")
	}

	srv, err := server.New(serverCfg, store, parser)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
