package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/llm"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/metrics"
	"github.com/DjordjeVuckovic/ai-news-hunter/pkg/stringsutil"
	"golang.org/x/sync/errgroup"
)

const (
	planMaxTokens       = 100
	synthesisMaxTokens  = 1024
	synthesisResultsMax = 12000
)

const planPrompt = `You are a research assistant specializing in AI and machine learning.
Pick the tools that are most relevant for researching the query below.

Query: %s

Available tools:
%s
Reply with a JSON array of tool names only, for example ["arxiv", "github"].`

const synthesisPrompt = `You are a research assistant specializing in AI and machine learning.
Research the following topic in the context of AI and machine learning: %s

Search results by source (JSON):
%s

Provide a comprehensive 2-3 paragraph summary that synthesizes the findings and cites which sources the information comes from.`

type Request struct {
	Query      string   `json:"query"`
	Tools      []string `json:"tools,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

// Agent fans a research query out to the registry's tools and optionally
// asks a language model to plan the tool set and synthesize an answer.
type Agent struct {
	registry *Registry
	llm      llm.Client
}

func NewAgent(registry *Registry, client llm.Client) *Agent {
	return &Agent{registry: registry, llm: client}
}

func (a *Agent) Registry() *Registry {
	return a.registry
}

func (a *Agent) Search(ctx context.Context, req Request) (*domain.ResearchResponse, error) {
	query, err := normalizeQuery(req.Query)
	if err != nil {
		return nil, err
	}
	max, err := normalizeMax(req.MaxResults)
	if err != nil {
		return nil, err
	}
	named, err := a.resolveNamed(req.Tools)
	if err != nil {
		return nil, err
	}

	restricted := len(named) > 0
	selected := named
	if !restricted {
		selected = a.plan(ctx, query)
	}

	slog.Info("research dispatch", "query", query, "tools", toolNames(selected), "restricted", restricted)
	sources := a.dispatch(ctx, selected, query, max)

	if !restricted {
		for _, t := range a.registry.Tools() {
			if _, ok := sources[t.Name()]; !ok && !t.Available() {
				sources[t.Name()] = domain.ToolOutcome{Error: errNotConfigured}
			}
		}
	}

	resp := &domain.ResearchResponse{Query: query, Sources: sources}
	if !restricted && llm.Available(a.llm) {
		resp.Response = a.synthesize(ctx, query, sources)
	}

	return resp, nil
}

func (a *Agent) resolveNamed(names []string) ([]Tool, error) {
	var (
		out     []Tool
		unknown []string
		seen    = make(map[string]struct{})
	)
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}

		t, ok := a.registry.Get(n)
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		out = append(out, t)
	}
	if len(unknown) > 0 {
		return nil, apperr.NewValidation(fmt.Sprintf("unknown tools: %s; valid tools: %s",
			strings.Join(unknown, ", "), strings.Join(a.registry.Names(), ", ")))
	}
	return out, nil
}

// plan asks the model for a tool subset and falls back to every available
// tool when the model is missing, fails or picks nothing usable.
func (a *Agent) plan(ctx context.Context, query string) []Tool {
	available := a.registry.Available()
	if !llm.Available(a.llm) || len(available) == 0 {
		return available
	}

	var b strings.Builder
	for _, t := range available {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name(), t.Description())
	}

	reply, err := a.llm.Complete(ctx, fmt.Sprintf(planPrompt, query, b.String()), planMaxTokens)
	metrics.RecordLLMCall("plan", err)
	if err != nil {
		slog.Warn("research planning failed, using all available tools", "error", err)
		return available
	}

	picked := ParsePlan(reply, available)
	if len(picked) == 0 {
		slog.Debug("planner selected no usable tools", "reply", reply)
		return available
	}
	return picked
}

// ParsePlan reads the planner reply as a JSON array, falling back to comma
// or newline separated names. Only names of the given tools are kept.
func ParsePlan(reply string, available []Tool) []Tool {
	byName := make(map[string]Tool, len(available))
	for _, t := range available {
		byName[t.Name()] = t
	}

	var names []string
	start, end := strings.Index(reply, "["), strings.LastIndex(reply, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(reply[start:end+1]), &names); err != nil {
			names = nil
		}
	}
	if names == nil {
		names = strings.FieldsFunc(reply, func(r rune) bool {
			return r == ',' || r == '\n'
		})
	}

	var out []Tool
	for _, n := range names {
		n = strings.ToLower(strings.Trim(n, " \t\"'`-*[]."))
		t, ok := byName[n]
		if !ok {
			continue
		}
		delete(byName, n)
		out = append(out, t)
	}
	return out
}

func (a *Agent) dispatch(ctx context.Context, selected []Tool, query string, max int) map[string]domain.ToolOutcome {
	var (
		mu      sync.Mutex
		g       errgroup.Group
		sources = make(map[string]domain.ToolOutcome, len(selected))
	)

	for _, t := range selected {
		g.Go(func() error {
			outcome := a.registry.run(ctx, t, query, max)
			mu.Lock()
			sources[t.Name()] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return sources
}

func (a *Agent) synthesize(ctx context.Context, query string, sources map[string]domain.ToolOutcome) string {
	succeeded := make(map[string]any, len(sources))
	for name, o := range sources {
		if !o.Failed() && o.Count > 0 {
			succeeded[name] = o.Results
		}
	}
	if len(succeeded) == 0 {
		return ""
	}

	raw, err := json.Marshal(succeeded)
	if err != nil {
		slog.Warn("failed to encode research results for synthesis", "error", err)
		return ""
	}

	prompt := fmt.Sprintf(synthesisPrompt, query, stringsutil.Clip(string(raw), synthesisResultsMax))
	reply, err := a.llm.Complete(ctx, prompt, synthesisMaxTokens)
	metrics.RecordLLMCall("synthesize", err)
	if err != nil {
		slog.Warn("research synthesis failed", "error", err)
		return ""
	}

	return strings.TrimSpace(reply)
}

func toolNames(tools []Tool) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name()
	}
	return names
}
