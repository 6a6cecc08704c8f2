// Package mcp exposes crossvet as an MCP stdio server. The connected client
// supplies the reviewer model through MCP sampling; crossvet steers it away
// from the generation model's family with model-preference hints, and falls
// back to a manual prompt when the client cannot sample.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/crossvet/crossvet/internal/detect"
	"github.com/crossvet/crossvet/internal/git"
	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/review"
	"github.com/crossvet/crossvet/internal/store"
	"github.com/crossvet/crossvet/internal/strategy"
)

const samplingMaxTokens = 4096

// Server wraps the review core and exposes it as MCP tools.
type Server struct {
	store        store.Store
	git          git.Client
	gh           git.GitHubClient
	catalog      *strategy.Catalog
	orchestrator *review.Orchestrator
}

// NewServer creates the MCP server wrapper. The store may be nil when
// history persistence is not configured.
func NewServer(s store.Store, gc git.Client, ghc git.GitHubClient, catalog *strategy.Catalog) *Server {
	return &Server{
		store:        s,
		git:          gc,
		gh:           ghc,
		catalog:      catalog,
		orchestrator: review.NewOrchestrator(review.NewBuilder(catalog), review.NewInterpreter(catalog)),
	}
}

// MCPServer returns a configured mcp-go server with all tools registered
// and sampling enabled.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("crossvet", "1.0.0", server.WithToolCapabilities(true))
	srv.EnableSampling()

	srv.AddTool(s.reviewCodeTool())
	srv.AddTool(s.detectModelTool())
	srv.AddTool(s.reviewHistoryTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// ---------------------------------------------------------------------------
// Sampling invoker
// ---------------------------------------------------------------------------

// samplingInvoker dispatches invocations through the MCP client's sampling
// capability. The session server is recovered from the handler context.
type samplingInvoker struct{}

func (samplingInvoker) Invoke(ctx context.Context, inv *models.Invocation) (*review.Response, error) {
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		return nil, fmt.Errorf("no active MCP session for sampling")
	}

	hints := make([]mcp.ModelHint, 0, len(inv.Preferences.FallbackHints))
	for _, h := range inv.Preferences.FallbackHints {
		hints = append(hints, mcp.ModelHint{Name: h})
	}

	samplingRequest := mcp.CreateMessageRequest{
		CreateMessageParams: mcp.CreateMessageParams{
			Messages: []mcp.SamplingMessage{
				{
					Role:    mcp.RoleUser,
					Content: mcp.TextContent{Type: "text", Text: inv.UserMessage},
				},
			},
			SystemPrompt: inv.SystemPrompt,
			MaxTokens:    samplingMaxTokens,
			ModelPreferences: &mcp.ModelPreferences{
				Hints:                hints,
				IntelligencePriority: inv.Preferences.IntelligencePriority,
				SpeedPriority:        inv.Preferences.SpeedPriority,
				CostPriority:         inv.Preferences.CostPriority,
			},
		},
	}

	result, err := srv.RequestSampling(ctx, samplingRequest)
	if err != nil {
		return nil, fmt.Errorf("sampling request: %w", err)
	}

	text, ok := result.Content.(mcp.TextContent)
	if !ok {
		return nil, fmt.Errorf("sampling returned non-text content")
	}
	return &review.Response{Model: result.Model, Content: text.Text}, nil
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// review_code
func (s *Server) reviewCodeTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("review_code",
		mcp.WithDescription("Review a code artifact with a model from a different family than the one that generated it. Returns a structured review result, or a manual fallback prompt when cross-model sampling is unavailable."),
		mcp.WithString("artifact", mcp.Required(), mcp.Description("The code to review")),
		mcp.WithString("generation_model", mcp.Description("Model that generated the code (detected from commit/pr when omitted)")),
		mcp.WithString("commit", mcp.Description("Commit ref to detect the generation model from")),
		mcp.WithString("pr", mcp.Description("Pull request number to detect the generation model from")),
		mcp.WithString("repo", mcp.Description("owner/repo for PR lookups (defaults to the current repo)")),
		mcp.WithString("path", mcp.Description("Local repository path for commit lookups (default: cwd)")),
		mcp.WithString("strategy", mcp.Description("Review strategy: adversarial, bias_aware, hybrid, general (default: bias_aware)")),
		mcp.WithString("review_type", mcp.Description("Focus: security, performance, maintainability, general")),
		mcp.WithString("language", mcp.Description("Language tag for the code fence")),
		mcp.WithString("context", mcp.Description("Free-text context shown to the reviewer before the code")),
	)
	return tool, s.handleReviewCode
}

func (s *Server) handleReviewCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	artifact, err := request.RequireString("artifact")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: artifact"), nil
	}

	req := models.ReviewRequest{
		Artifact:        artifact,
		GenerationModel: request.GetString("generation_model", ""),
		Strategy:        models.Strategy(request.GetString("strategy", "")),
		ReviewType:      models.ReviewType(request.GetString("review_type", "")),
		Language:        request.GetString("language", ""),
		Context:         request.GetString("context", ""),
	}

	// Authorship lookup is best-effort: a failed fetch only disables
	// detection, it never aborts the review.
	if req.GenerationModel == "" {
		authors, err := s.fetchAuthors(request)
		if err != nil {
			slog.Warn("authorship lookup failed", "error", err)
		}
		req.Authors = authors
	}

	outcome, err := s.orchestrator.Run(ctx, samplingInvoker{}, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if outcome.Fallback != nil {
		data, _ := json.Marshal(map[string]any{"fallback": outcome.Fallback})
		return mcp.NewToolResultText(string(data)), nil
	}

	s.persist(ctx, req, outcome.GenerationModel, outcome.Result)

	data, err := json.Marshal(outcome.Result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// persist records a completed review; history is advisory and failures are
// only logged.
func (s *Server) persist(ctx context.Context, req models.ReviewRequest, generationModel string, result *models.ReviewResult) {
	if s.store == nil {
		return
	}
	reviewType := req.ReviewType
	if reviewType == "" {
		reviewType = models.ReviewTypeGeneral
	}
	record := &models.ReviewRecord{
		GenerationModel: generationModel,
		ReviewModel:     result.ReviewModel,
		Strategy:        result.Strategy,
		ReviewType:      reviewType,
		Language:        req.Language,
		Summary:         result.Summary,
		Issues:          result.Issues,
		Metrics:         result.Metrics,
		Alternative:     result.Alternative,
		BiasTriggers:    result.BiasTriggersFound,
	}
	if err := s.store.CreateReview(ctx, record); err != nil {
		slog.Warn("failed to persist review", "error", err)
	}
}

// fetchAuthors resolves authorship metadata from the commit or PR named in
// the request, if any.
func (s *Server) fetchAuthors(request mcp.CallToolRequest) ([]models.AuthorRecord, error) {
	if commit := request.GetString("commit", ""); commit != "" {
		path := request.GetString("path", ".")
		return s.git.CommitAuthors(path, commit)
	}
	if pr := request.GetString("pr", ""); pr != "" {
		var number int
		if _, err := fmt.Sscanf(pr, "%d", &number); err != nil {
			return nil, fmt.Errorf("invalid pr number: %s", pr)
		}
		return s.gh.PRAuthors(request.GetString("repo", ""), number)
	}
	return nil, nil
}

// detect_model
func (s *Server) detectModelTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("detect_model",
		mcp.WithDescription("Detect which AI model family authored a change from its authorship metadata. Provide author records directly, or a commit/pr reference to look them up. Returns {\"model\": <id>} or {\"model\": null}."),
		mcp.WithArray("authors", mcp.Description("Author records: objects with optional name, email, login, id")),
		mcp.WithString("commit", mcp.Description("Commit ref to look up authors from")),
		mcp.WithString("pr", mcp.Description("Pull request number to look up authors from")),
		mcp.WithString("repo", mcp.Description("owner/repo for PR lookups")),
		mcp.WithString("path", mcp.Description("Local repository path for commit lookups (default: cwd)")),
	)
	return tool, s.handleDetectModel
}

func (s *Server) handleDetectModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	authors := parseAuthorArgs(request.GetArguments()["authors"])
	if len(authors) == 0 {
		fetched, err := s.fetchAuthors(request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("authorship lookup failed: %v", err)), nil
		}
		authors = fetched
	}

	result := map[string]any{"model": nil}
	if model := detect.Detect(authors); model != "" {
		result["model"] = model
	}
	data, _ := json.Marshal(result)
	return mcp.NewToolResultText(string(data)), nil
}

// parseAuthorArgs decodes the loosely-typed authors argument into records.
// Unrecognized entries are skipped rather than erroring; detection treats
// absent fields as empty.
func parseAuthorArgs(raw any) []models.AuthorRecord {
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}
	var authors []models.AuthorRecord
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		str := func(key string) string {
			v, _ := fields[key].(string)
			return v
		}
		authors = append(authors, models.AuthorRecord{
			Name:  str("name"),
			Email: str("email"),
			Login: str("login"),
			ID:    str("id"),
		})
	}
	return authors
}

// review_history
func (s *Server) reviewHistoryTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("review_history",
		mcp.WithDescription("List previously completed reviews, newest first. Returns a JSON array with models, strategy, summary, issues, and metrics per review."),
		mcp.WithString("strategy", mcp.Description("Filter by strategy")),
		mcp.WithString("generation_model", mcp.Description("Filter by generation model")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of reviews to return (default 20)")),
	)
	return tool, s.handleReviewHistory
}

func (s *Server) handleReviewHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("review history is not configured"), nil
	}

	filter := store.ReviewListFilter{
		Strategy:        models.Strategy(request.GetString("strategy", "")),
		GenerationModel: request.GetString("generation_model", ""),
		Limit:           request.GetInt("limit", 20),
	}

	records, err := s.store.ListReviews(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reviews: %v", err)), nil
	}
	if records == nil {
		records = []*models.ReviewRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal reviews: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
