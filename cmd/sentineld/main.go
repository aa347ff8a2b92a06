// Command sentineld runs the disaster-response coordination server: the
// situation graph, analyzer oracle, contradiction detector, planning
// trigger, simulation driver, and the HTTP/WebSocket transport in front of
// them.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"goa.design/clue/log"

	"github.com/sentineldr/core/internal/broadcast"
	"github.com/sentineldr/core/internal/config"
	"github.com/sentineldr/core/internal/coordinator"
	"github.com/sentineldr/core/internal/detector"
	"github.com/sentineldr/core/internal/graph"
	"github.com/sentineldr/core/internal/oracle"
	"github.com/sentineldr/core/internal/oracle/llm"
	"github.com/sentineldr/core/internal/planner"
	"github.com/sentineldr/core/internal/simulation"
	"github.com/sentineldr/core/internal/telemetry"
	transporthttp "github.com/sentineldr/core/internal/transport/http"
)

func main() {
	cfg := config.Load()

	format := log.FormatJSON
	if cfg.LogFormat == "text" && log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	logger := telemetry.NewClueLogger()
	metrics := telemetry.NewClueMetrics()
	tracer := telemetry.NewClueTracer()

	client, backend := selectLLMBackend(ctx, cfg, logger)
	logger.Info(ctx, "oracle backend selected", "backend", backend)

	o := oracle.New(client, logger, metrics)
	g := graph.New()
	det := detector.New(o, logger, metrics, tracer)
	plan := planner.New(o, logger, metrics, tracer)
	fabric := broadcast.New(logger)

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sink, err := broadcast.NewPulseSink(redisClient, "")
		if err != nil {
			logger.Warn(ctx, "pulse sink unavailable, dashboard fan-out stays in-process only", "error", err.Error())
		} else {
			fabric.Subscribe(sink)
			logger.Info(ctx, "pulse broadcast sink attached", "redis_addr", cfg.RedisAddr)
		}
	}

	coord := coordinator.New(g, o, det, plan, fabric, logger, metrics, tracer)
	driver := simulation.NewDriver(coord, os.Getenv("SCENARIO_DIR"))
	coord.SetSimulationDriver(driver)

	server := transporthttp.NewServer(coord, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generous: the WebSocket route is long-lived
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info(ctx, "starting coordination server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "graceful shutdown failed", "error", err.Error())
	}
}

// selectLLMBackend picks the first configured LLM credential, preferring
// Anthropic, then OpenAI, then Bedrock (region from AWS_REGION), falling
// back to no client at all so every analyzer runs on its deterministic
// fallback.
func selectLLMBackend(ctx context.Context, cfg config.Settings, logger telemetry.Logger) (llm.Client, string) {
	if cfg.AnthropicAPIKey != "" {
		client, err := llm.NewAnthropic(cfg.AnthropicAPIKey, "claude-sonnet-4-5-20250929", 1024)
		if err == nil {
			return client, "anthropic"
		}
		logger.Warn(ctx, "anthropic client init failed", "error", err.Error())
	}
	if cfg.OpenAIAPIKey != "" {
		client, err := llm.NewOpenAI(cfg.OpenAIAPIKey, "gpt-4o-mini")
		if err == nil {
			return client, "openai"
		}
		logger.Warn(ctx, "openai client init failed", "error", err.Error())
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		client, err := llm.NewBedrock(ctx, region, "anthropic.claude-3-5-sonnet-20241022-v2:0")
		if err == nil {
			return client, "bedrock"
		}
		logger.Warn(ctx, "bedrock client init failed", "error", err.Error())
	}
	return nil, "none (fallback-only)"
}
