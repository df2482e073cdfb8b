package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lexigraph/backend/internal/discord"
	"lexigraph/backend/internal/graph"
	"lexigraph/backend/internal/vocabulary"
	"lexigraph/backend/pkg/config"
	"lexigraph/backend/pkg/logger"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting Discord bot...")

	if cfg.DiscordBotToken == "" {
		log.Fatal("DISCORD_BOT_TOKEN is required")
	}

	connector, err := graph.NewConnector(cfg.Neo4j, log)
	if err != nil {
		log.Fatal("Invalid Neo4j configuration", zap.Error(err))
	}
	fetcher := vocabulary.NewFetcher(connector, log)

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.Fatal("Failed to create Discord session", zap.Error(err))
	}

	handler := discord.NewHandler(fetcher, cfg.CommandPrefix, log)
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		handler.HandleMessage(s, m)
	})

	// Message content is needed to read the command arguments
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	if err := dg.Open(); err != nil {
		log.Fatal("Failed to open Discord connection", zap.Error(err))
	}
	defer dg.Close()

	log.Info("Discord bot is running. Press CTRL-C to exit.",
		zap.String("prefix", cfg.CommandPrefix),
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-shutdownChan

	log.Info("Shutting down Discord bot...")
}
