package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/ai-news-hunter/internal/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixtureTools() (arxiv, wiki, web *mockTool) {
	arxiv = newMockTool("arxiv", true)
	wiki = newMockTool("wikipedia", true)
	web = newMockTool("web_search", false)
	return
}

func TestAgent_SingleNamedToolSkipsModel(t *testing.T) {
	arxiv, wiki, web := fixtureTools()
	arxiv.On("Search", mock.Anything, "diffusion models", 3).Return(List[string]{"p1"}, nil).Once()

	model := &llmtest.MockClient{}
	agent := NewAgent(NewRegistry([]Tool{arxiv, wiki, web}), model)

	resp, err := agent.Search(context.Background(), Request{Query: "diffusion models", Tools: []string{"ARXIV"}, MaxResults: 3})
	require.NoError(t, err)

	assert.Len(t, resp.Sources, 1)
	assert.Equal(t, 1, resp.Sources["arxiv"].Count)
	assert.False(t, resp.HasResponse())
	model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	wiki.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestAgent_NamedUnavailableTool(t *testing.T) {
	arxiv, wiki, web := fixtureTools()
	agent := NewAgent(NewRegistry([]Tool{arxiv, wiki, web}), nil)

	resp, err := agent.Search(context.Background(), Request{Query: "rag", Tools: []string{"web_search"}})
	require.NoError(t, err)
	assert.Equal(t, "tool not configured", resp.Sources["web_search"].Error)
}

func TestAgent_Validation(t *testing.T) {
	arxiv, wiki, web := fixtureTools()
	agent := NewAgent(NewRegistry([]Tool{arxiv, wiki, web}), nil)

	tests := []struct {
		name string
		req  Request
	}{
		{name: "short query", req: Request{Query: "x"}},
		{name: "unknown tool", req: Request{Query: "transformers", Tools: []string{"arxiv", "bing"}}},
		{name: "max results", req: Request{Query: "transformers", MaxResults: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := agent.Search(context.Background(), tt.req)
			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestAgent_NoModelUsesAllAvailableTools(t *testing.T) {
	arxiv, wiki, web := fixtureTools()
	arxiv.On("Search", mock.Anything, "graph neural networks", 5).Return(List[string]{"a", "b"}, nil)
	wiki.On("Search", mock.Anything, "graph neural networks", 5).Return(nil, errors.New("503 from upstream"))

	agent := NewAgent(NewRegistry([]Tool{arxiv, wiki, web}), nil)
	resp, err := agent.Search(context.Background(), Request{Query: "graph neural networks"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Sources["arxiv"].Count)
	assert.Equal(t, "503 from upstream", resp.Sources["wikipedia"].Error)
	assert.Equal(t, "tool not configured", resp.Sources["web_search"].Error)
	assert.Empty(t, resp.Response)
	web.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestAgent_PlanAndSynthesize(t *testing.T) {
	arxiv, wiki, web := fixtureTools()
	arxiv.On("Search", mock.Anything, "mixture of experts", 5).Return(List[string]{"moe paper"}, nil)

	model := &llmtest.MockClient{}
	model.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Available tools")
	}), planMaxTokens).Return(`Sure: ["arxiv", "youtube"]`, nil).Once()
	model.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "moe paper")
	}), synthesisMaxTokens).Return("MoE routes tokens to experts.", nil).Once()

	agent := NewAgent(NewRegistry([]Tool{arxiv, wiki, web}), model)
	resp, err := agent.Search(context.Background(), Request{Query: "mixture of experts"})
	require.NoError(t, err)

	assert.Equal(t, "MoE routes tokens to experts.", resp.Response)
	assert.Contains(t, resp.Sources, "arxiv")
	assert.NotContains(t, resp.Sources, "wikipedia")
	wiki.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	model.AssertExpectations(t)
}

func TestAgent_ModelFailureDegrades(t *testing.T) {
	arxiv, wiki, web := fixtureTools()
	arxiv.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(List[string]{"a"}, nil)
	wiki.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(List[string]{"b"}, nil)

	model := &llmtest.MockClient{}
	model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota"))

	agent := NewAgent(NewRegistry([]Tool{arxiv, wiki, web}), model)
	resp, err := agent.Search(context.Background(), Request{Query: "vision transformers"})
	require.NoError(t, err)

	assert.False(t, resp.HasResponse())
	assert.Equal(t, 1, resp.Sources["arxiv"].Count)
	assert.Equal(t, 1, resp.Sources["wikipedia"].Count)
}

func TestParsePlan(t *testing.T) {
	arxiv, wiki, web := fixtureTools()
	tools := []Tool{arxiv, wiki, web}

	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{name: "json array", reply: `["wikipedia","arxiv"]`, want: []string{"wikipedia", "arxiv"}},
		{name: "csv", reply: "arxiv, Wikipedia", want: []string{"arxiv", "wikipedia"}},
		{name: "bullets", reply: "- arxiv\n- arxiv\n- github", want: []string{"arxiv"}},
		{name: "nothing usable", reply: "I cannot help", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toolNames(ParsePlan(tt.reply, tools))
			assert.Equal(t, tt.want, got)
		})
	}
}
