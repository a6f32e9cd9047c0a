package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"sitesmith/pkg/api/handler"
	"sitesmith/pkg/api/middleware"
	"sitesmith/pkg/git"
	"sitesmith/pkg/logger"
	"sitesmith/pkg/openai"
	"sitesmith/pkg/repository"
	"sitesmith/pkg/services"
	"sitesmith/pkg/workers"
)

type Config struct {
	OpenAIKey             string `env:"OPENAI_API_KEY,required"`
	OpenAIModel           string `env:"OPENAI_MODEL" envDefault:"o3-mini"`
	OpenAIReasoningEffort string `env:"OPENAI_REASONING_EFFORT" envDefault:"high"`
	OpenAIJSONMode        bool   `env:"OPENAI_JSON_MODE" envDefault:"true"`
	Port                  int    `env:"PORT" envDefault:"3000"`
	PublicDir             string `env:"PUBLIC_DIR" envDefault:"public"`
	DataDir               string `env:"DATA_DIR" envDefault:"data"`
	AutoCommit            bool   `env:"AUTO_COMMIT" envDefault:"false"`
	GitRepoDir            string `env:"GIT_REPO_DIR" envDefault:"."`
	TLSCertFile           string `env:"TLS_CERT_FILE"`
	TLSKeyFile            string `env:"TLS_KEY_FILE"`
	FallbackPolicy        string `env:"FALLBACK_POLICY" envDefault:"raw"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	historyRepository, err := repository.NewHistoryRepository(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("creating history repository: %w", err)
	}
	artifactRepository, err := repository.NewArtifactRepository(cfg.PublicDir)
	if err != nil {
		return nil, fmt.Errorf("creating artifact repository: %w", err)
	}
	promptRepository, err := repository.NewPromptRepository(cfg.DataDir, cfg.PublicDir)
	if err != nil {
		return nil, fmt.Errorf("creating prompt repository: %w", err)
	}

	openAIClient, err := openai.NewClient(cfg.OpenAIKey, openai.Config{
		Model:           cfg.OpenAIModel,
		ReasoningEffort: cfg.OpenAIReasoningEffort,
		JSONMode:        cfg.OpenAIJSONMode,
	})
	if err != nil {
		return nil, fmt.Errorf("creating open ai client: %w", err)
	}

	promptBuilder := services.NewPromptBuilder(historyRepository, artifactRepository, promptRepository)
	replyParser := services.NewReplyParser(services.FallbackPolicy(cfg.FallbackPolicy))
	committer := git.NewCommitter(cfg.GitRepoDir)

	turnService := services.NewTurnService(
		promptBuilder,
		openAIClient,
		replyParser,
		committer,
		historyRepository,
		artifactRepository,
		promptRepository,
		cfg.AutoCommit,
	)
	projectService := services.NewProjectService(historyRepository, artifactRepository)

	chatHandler := handler.NewChat(turnService)
	historyHandler := handler.NewChatHistory(projectService)
	promptHandler := handler.NewSystemPrompt(promptRepository)
	projectsHandler := handler.NewProjects(projectService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", chatHandler.ProcessTurn)
	mux.HandleFunc("GET /chatHistory", historyHandler.Get)
	mux.HandleFunc("DELETE /chatHistory", historyHandler.Delete)
	mux.HandleFunc("GET /systemPrompt/user", promptHandler.GetUser)
	mux.HandleFunc("GET /systemPrompt/fixed", promptHandler.GetFixed)
	mux.HandleFunc("GET /api/list", projectsHandler.List)
	mux.Handle("/", http.FileServer(http.Dir(cfg.PublicDir)))

	var workerGroup workers.Group

	server, err := workers.NewHTTPServer(
		fmt.Sprintf(":%d", cfg.Port),
		middleware.RequestID(mux),
		cfg.TLSCertFile,
		cfg.TLSKeyFile,
	)
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}
	workerGroup = append(workerGroup, server)

	return workerGroup, nil
}
