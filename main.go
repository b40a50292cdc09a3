package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/Chative-triage/server/internal/agent/graph"
	"github.com/Chative-triage/server/internal/agent/graph/conversations"
	"github.com/Chative-triage/server/internal/agent/model"
	"github.com/Chative-triage/server/internal/agent/repo"
	"github.com/Chative-triage/server/internal/core"
	errx "github.com/Chative-triage/server/internal/core/error"
	"github.com/Chative-triage/server/internal/shell"
	logx "github.com/Chative-triage/server/pkg/logger"
	pkgredis "github.com/Chative-triage/server/pkg/redis"
)

// StoreConfig is the part of the configuration needed to reach stored
// conversations. It needs no model credentials.
type StoreConfig struct {
	Environment core.Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string           `envconfig:"LOG_LEVEL" default:"warn"`

	// Infrastructure
	Redis        pkgredis.Config
	Conversation model.ConversationConfig
}

// AppConfig defines all configurable parameters, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	StoreConfig

	// LLM provider
	APIKey  string `envconfig:"GOOGLE_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Classifier model.ClassifierModelConfig
	Responder  model.ResponderModelConfig
	Shell      model.ShellConfig
}

var (
	conversationID string
	markdown       bool
)

var rootCmd = &cobra.Command{
	Use:   "chative",
	Short: "Chat triage: categorize each message, then answer with a matching persona",
	Long: `Starts an interactive chat. Every message is categorized as tecnico, comercial,
suporte or geral, and the reply is generated by the persona for that category.

Type 'sair', 'exit' or 'quit' to leave.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		sh, err := app.shell()
		if err != nil {
			return err
		}
		sh.Banner()
		return sh.Run(cmd.Context())
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Process a single message and print category and reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		sh, err := app.shell()
		if err != nil {
			return err
		}
		return sh.Handle(cmd.Context(), strings.Join(args, " "))
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored history of --conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("conversation") {
			return fmt.Errorf("--conversation is required")
		}
		var cfg StoreConfig
		if err := loadConfig(&cfg); err != nil {
			return err
		}
		logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Level: cfg.LogLevel})
		return resetConversation(cmd.Context(), cfg, conversationID, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&conversationID, "conversation", "c", uuid.NewString(), "conversation id used to load and store history")
	rootCmd.PersistentFlags().BoolVar(&markdown, "markdown", false, "render replies as markdown (overrides SHELL_MARKDOWN)")
	rootCmd.AddCommand(askCmd, resetCmd)
}

type app struct {
	cfg     AppConfig
	runner  graph.Runner
	manager *conversations.MessagesManager
	closers []func() error
}

// loadConfig reads .env (if present) and binds the environment into spec.
func loadConfig(spec any) error {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}
	if err := envconfig.Process("", spec); err != nil {
		return errx.Config(fmt.Errorf("process environment config: %w", err))
	}
	return nil
}

func newApp(ctx context.Context) (*app, error) {
	var cfg AppConfig
	if err := loadConfig(&cfg); err != nil {
		return nil, err
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Level: cfg.LogLevel})

	a := &app{cfg: cfg}

	conversationRepo, closeRepo, err := openConversationRepo(ctx, cfg.StoreConfig)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeRepo)
	a.manager = conversations.NewMessagesManager(conversationRepo, cfg.Conversation)

	runner, err := graph.BuildTriageGraph(ctx, graph.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Classifier: cfg.Classifier,
		Responder:  cfg.Responder,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("build graph: %w", err)
	}
	a.runner = runner

	logx.Info().
		Str("environment", cfg.Environment.String()).
		Str("store", cfg.Conversation.Store).
		Str("conversation_id", conversationID).
		Msg("Triage pipeline ready")
	return a, nil
}

func isMemoryStore(store string) bool {
	return store == "" || store == "memory"
}

// openConversationRepo returns the configured repository and a func that
// releases its connection.
func openConversationRepo(ctx context.Context, cfg StoreConfig) (model.ConversationRepository, func() error, error) {
	switch {
	case isMemoryStore(cfg.Conversation.Store):
		return repo.NewMemoryConversationRepository(), func() error { return nil }, nil
	case cfg.Conversation.Store == "redis":
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, nil, errx.WrapRedis(fmt.Errorf("connect: %w", err))
		}
		logx.Debug().Dur("ttl", cfg.Conversation.TTL).Msg("Connected to Redis")
		return repo.NewRedisConversationRepository(rdb, cfg.Conversation.TTL), rdb.Close, nil
	default:
		return nil, nil, errx.Config(fmt.Errorf("unknown CONVERSATION_STORE %q (want memory or redis)", cfg.Conversation.Store))
	}
}

// resetConversation clears a stored conversation. The memory store lives only
// as long as one process, so there is nothing to clear there.
func resetConversation(ctx context.Context, cfg StoreConfig, id string, out io.Writer) error {
	if isMemoryStore(cfg.Conversation.Store) {
		return errx.Config(fmt.Errorf("reset needs a persistent store, CONVERSATION_STORE is %q", cfg.Conversation.Store))
	}

	conversationRepo, closeRepo, err := openConversationRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logx.Warn().Err(err).Msg("close failed")
		}
	}()

	manager := conversations.NewMessagesManager(conversationRepo, cfg.Conversation)
	if err := manager.Reset(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Conversa %s apagada.\n", id)
	return nil
}

func (a *app) shell() (*shell.Shell, error) {
	render, err := shell.NewRenderer(os.Stdout, markdown || a.cfg.Shell.Markdown)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return shell.New(a.runner, a.manager, conversationID, os.Stdin, os.Stdout, render), nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logx.Warn().Err(err).Msg("close failed")
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERRO: %v\n", err)
		os.Exit(1)
	}
}
