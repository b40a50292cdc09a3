package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/Chative-triage/server/internal/agent/agents"
	"github.com/Chative-triage/server/internal/agent/graph/nodes"
	"github.com/Chative-triage/server/internal/agent/graph/observers"
	"github.com/Chative-triage/server/internal/agent/llm"
	"github.com/Chative-triage/server/internal/agent/model"
	errx "github.com/Chative-triage/server/internal/core/error"
	logx "github.com/Chative-triage/server/pkg/logger"
)

const graphName = "TriageGraph"

// Runner executes the compiled triage graph for one message.
type Runner interface {
	Process(ctx context.Context, message string, history model.History) (model.ProcessResult, error)
}

// Config holds everything needed to compose the graph end-to-end against Gemini.
type Config struct {
	APIKey     string
	BaseURL    string
	Classifier model.ClassifierModelConfig
	Responder  model.ResponderModelConfig
}

// GraphConfig holds the stages the graph sequences.
type GraphConfig struct {
	Classifier nodes.Classifier
	Responder  nodes.Responder
}

// GraphBuilder handles the construction of the triage graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.ProcessInput, model.ProcessResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.ProcessInput, model.ProcessResult]
}

// Process classifies the message, generates the reply and returns the extended history.
// history is never modified. A stage error is returned exactly as the stage raised it.
func (r *graphRunner) Process(ctx context.Context, message string, history model.History) (model.ProcessResult, error) {
	ctx, fault := nodes.WithFaultCapture(ctx)

	out, err := r.runnable.Invoke(ctx, model.ProcessInput{
		Message: message,
		History: history,
	}, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		if stageErr := fault.Err(); stageErr != nil {
			return model.ProcessResult{}, stageErr
		}
		return model.ProcessResult{}, err
	}
	return out, nil
}

// BuildTriageGraph creates the Gemini-backed stages and returns a Runner.
func BuildTriageGraph(ctx context.Context, cfg Config) (Runner, error) {
	gens, err := llm.NewGeminiGenerators(ctx, llm.GeminiConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Classifier: &cfg.Classifier,
		Responder:  &cfg.Responder,
	})
	if err != nil {
		return nil, err
	}

	runner, err := NewRunner(ctx, &GraphConfig{
		Classifier: agents.NewClassifier(gens.Classifier, cfg.Classifier.Temperature),
		Responder:  agents.NewResponder(gens.Responder, cfg.Responder.Temperature),
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().
		Str("classifier_model", gens.ClassifierModelName).
		Str("responder_model", gens.ResponderModelName).
		Msg("Triage graph built successfully")
	return runner, nil
}

// NewRunner compiles the graph over the given stages.
func NewRunner(ctx context.Context, config *GraphConfig) (Runner, error) {
	runnable, err := BuildGraph(ctx, config)
	if err != nil {
		return nil, err
	}
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled triage graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.ProcessInput, model.ProcessResult], error) {
	if config == nil {
		return nil, errx.Config(fmt.Errorf("graph config is nil"))
	}
	if config.Classifier == nil || config.Responder == nil {
		return nil, errx.Config(fmt.Errorf("classifier and responder stages are required"))
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.ProcessInput, model.ProcessResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.ConversationState {
				return &model.ConversationState{}
			}),
		),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds the categorize, respond and finalize nodes
func (b *GraphBuilder) addNodes() error {
	if err := b.graph.AddLambdaNode(nodes.NodeCategorize,
		nodes.NewCategorizeNode(b.config.Classifier),
		compose.WithStatePreHandler(nodes.NewCategorizePreHandler()),
		compose.WithStatePostHandler(nodes.NewCategorizePostHandler()),
	); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeCategorize, err)
	}

	if err := b.graph.AddLambdaNode(nodes.NodeRespond,
		nodes.NewRespondNode(b.config.Responder),
		compose.WithStatePostHandler(nodes.NewRespondPostHandler()),
	); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeRespond, err)
	}

	if err := b.graph.AddLambdaNode(nodes.NodeFinalize, nodes.NewFinalizeNode()); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeFinalize, err)
	}
	return nil
}

// addEdges wires the linear flow START -> Categorize -> Respond -> Finalize -> END
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeCategorize},
		{nodes.NodeCategorize, nodes.NodeRespond},
		{nodes.NodeRespond, nodes.NodeFinalize},
		{nodes.NodeFinalize, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.ProcessInput, model.ProcessResult], error) {
	runnable, err := b.graph.Compile(ctx,
		compose.WithGraphName(graphName),
		compose.WithMaxRunSteps(10),
	)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
