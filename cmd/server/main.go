package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/api"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/config"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/copilot"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/dataset"
	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/metrics"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("╔════════════════════════════════════════════════════════╗")
	log.Println("║  VerveWell Marketing Dashboard Server                  ║")
	log.Println("║  CSV analytics API with embedded Marketing Copilot     ║")
	log.Println("╚════════════════════════════════════════════════════════╝")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 3001
	}
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	// Load the campaign dataset. A missing or unreadable CSV degrades to an
	// empty dataset so the chat endpoint still answers with fallbacks.
	data, err := dataset.LoadFile(cfg.Dataset.Path)
	if err != nil {
		log.Printf("WARNING: failed to load dataset from %s: %v", cfg.Dataset.Path, err)
		log.Printf("Continuing with an empty dataset; /api/metrics will be unavailable")
		data = dataset.Dataset{}
	} else {
		log.Printf("Loaded %d campaign records from %s", len(data), cfg.Dataset.Path)
	}

	knowledge := dataset.BuildKnowledge(data)
	log.Printf("Dataset knowledge built: %d brands, %d channels, %d regions",
		len(knowledge.Overview.Brands), len(knowledge.Overview.Channels), len(knowledge.Overview.Regions))

	// Provider clients are created whenever keys exist so the diagnostic
	// endpoints can exercise both; the resolver uses the configured one.
	var openAIClient *copilot.OpenAIClient
	if cfg.OpenAI.APIKey != "" {
		openAIClient = copilot.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Copilot.Timeout())
		log.Printf("OpenAI client configured (model %s)", openAIClient.Model())
	}
	var geminiClient *copilot.GeminiClient
	if cfg.Gemini.APIKey != "" {
		geminiClient = copilot.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
		log.Printf("Gemini client configured (model %s)", geminiClient.Model())
	}

	var provider copilot.Provider
	switch cfg.Copilot.Provider {
	case "gemini":
		if geminiClient != nil {
			provider = geminiClient
		}
	default:
		if openAIClient != nil {
			provider = openAIClient
		}
	}
	if provider == nil {
		log.Printf("No LLM provider configured; copilot will answer locally or via fallback")
	} else {
		log.Printf("Copilot provider: %s", provider.Name())
	}

	resolver := copilot.NewResolver(data, knowledge, provider, cfg.Copilot.Timeout())
	formatter := metrics.NewFormatter(nil)

	handlers := api.NewHandlers(data, knowledge, resolver, formatter, openAIClient, geminiClient, cfg.Copilot.Provider)
	server := api.NewServer(handlers, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", host, port)
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
