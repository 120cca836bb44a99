package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cargolens-systems/cargolens-oracle/common/logging"
	"github.com/cargolens-systems/cargolens-oracle/common/middleware"
	"github.com/cargolens-systems/cargolens-oracle/common/signer"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/chain"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/config"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/handlers"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/llm"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/ratelimit"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/server"
	"github.com/cargolens-systems/cargolens-oracle/oracle/internal/service"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("oracle"))
	logging.SetDefault(logger)

	slog.Info("Starting Oracle service",
		slog.Int("port", cfg.Server.Port),
		slog.String("llm_backend", cfg.LLM.Backend),
		slog.String("sui_network", cfg.Sui.Network),
		slog.String("log_level", cfg.Logging.Level),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// Initialize the oracle signing key. The key is held read-only for the
	// process lifetime.
	var oracleSigner *signer.Signer
	if cfg.Oracle.PrivateKey != "" {
		oracleSigner, err = signer.FromHex(cfg.Oracle.PrivateKey)
		if err != nil {
			log.Fatalf("Failed to load oracle private key: %v", err)
		}
		slog.Info("Loaded oracle private key from config")
	} else {
		oracleSigner, err = signer.Generate()
		if err != nil {
			log.Fatalf("Failed to generate oracle keypair: %v", err)
		}
		slog.Warn("Generated ephemeral oracle keypair (set oracle.private_key to keep a stable identity)")
	}
	slog.Info("Oracle identity", slog.String("public_key", oracleSigner.PublicKeyHex()))

	// Select the LLM backend
	var llmClient llm.Client
	switch cfg.LLM.Backend {
	case "ollama":
		llmClient = llm.NewOllama(llm.OllamaConfig{
			URL:         cfg.Ollama.URL,
			Model:       cfg.Ollama.Model,
			MaxTokens:   cfg.Ollama.MaxTokens,
			Temperature: cfg.Ollama.Temperature,
			Timeout:     cfg.Ollama.Timeout,
		})
	case "huggingface":
		if cfg.HuggingFace.APIToken == "" {
			slog.Warn("huggingface.api_token is not set; report generation will degrade")
		}
		llmClient = llm.NewHuggingFace(llm.HuggingFaceConfig{
			APIToken:    cfg.HuggingFace.APIToken,
			Model:       cfg.HuggingFace.Model,
			MaxTokens:   cfg.HuggingFace.MaxTokens,
			Temperature: cfg.HuggingFace.Temperature,
			Timeout:     cfg.HuggingFace.Timeout,
		})
	case "mock":
		llmClient = llm.NewMock()
	}
	slog.Info("LLM backend configured",
		slog.String("backend", llmClient.Name()),
		slog.String("model", llmClient.Model()),
	)

	// Select the chain backend
	var chainClient chain.Client
	mockChain := true
	switch cfg.Sui.Backend {
	case "memory":
		chainClient = chain.NewMemory()
		slog.Info("Chain backend: in-memory (demo mode)")
	default:
		chainClient = chain.NewSui(chain.SuiConfig{
			RPCURL:     cfg.Sui.RPCURL,
			Network:    cfg.Sui.Network,
			PackageID:  cfg.Sui.PackageID,
			ModuleName: cfg.Sui.ModuleName,
		})
		slog.Info("Chain backend: sui (execution mocked pending contract deployment)",
			slog.String("rpc_url", cfg.Sui.RPCURL),
		)
	}

	// Initialize rate limiter
	var limiter ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		redisLimiter, err := ratelimit.NewRedisRateLimiter(
			cfg.RateLimit.RedisURL,
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window,
		)
		if err != nil {
			slog.Warn("Failed to initialize Redis rate limiter, continuing without rate limiting",
				logging.Error(err),
			)
			limiter = &ratelimit.NoOpRateLimiter{}
		} else {
			limiter = redisLimiter
			slog.Info("Rate limiting enabled",
				slog.Int("requests", cfg.RateLimit.Requests),
				slog.Duration("window", cfg.RateLimit.Window),
			)
		}
	} else {
		limiter = &ratelimit.NoOpRateLimiter{}
		slog.Info("Rate limiting disabled in configuration")
	}
	defer limiter.Close()

	// Wire the pipeline
	oracleService := service.New(llmClient, chainClient, oracleSigner, logger, service.Options{
		Network:         cfg.Sui.Network,
		ContractPackage: cfg.Sui.PackageID,
		MockChain:       mockChain,
	})

	handler := handlers.NewOracleHandler(oracleService, limiter, logger)
	router := server.NewRouter(handler, middleware.DefaultCORSConfig())

	// Create server with config values
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		slog.Info("Oracle service listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("Server stopped")
}
