package dto

import "github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"

type ResearchSearchRequest struct {
	Query      string   `json:"query"`
	Tools      []string `json:"tools,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

type ResearchToolRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type ToolsResponse struct {
	Tools []domain.ToolInfo `json:"tools"`
}
