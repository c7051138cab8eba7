package txnquery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/micronauticals/txnquery/config"
	"github.com/micronauticals/txnquery/schema"
)

const Version = "1.0.0"

// NewServer builds an MCP server exposing the query engine as tools.
func NewServer(cfg *config.Config) (*server.MCPServer, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create txnquery client failed, err: %w", err)
	}

	s := server.NewMCPServer(
		"txnquery",
		Version,
		server.WithInstructions("Answers natural-language questions over ingested financial transaction records, with deterministic filtering, statistics and semantic retrieval"),
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("ingest_records",
			mcp.WithDescription("Ingest a JSON array of transaction records, replacing the current dataset"),
			mcp.WithString("records", mcp.Required(), mcp.Description("JSON array of transaction objects")),
		),
		handleIngest(client),
	)

	s.AddTool(
		mcp.NewTool("query",
			mcp.WithDescription("Answer a free-text question (English, Hindi or Hinglish) over the ingested transactions"),
			mcp.WithString("prompt", mcp.Required(), mcp.Description("The user's question")),
			mcp.WithNumber("page", mcp.Description("Page number for paginated listings, starting at 1")),
			mcp.WithNumber("page_size", mcp.Description("Records per page")),
			mcp.WithBoolean("show_all", mcp.Description("Include the paginated record listing in the response")),
			mcp.WithBoolean("use_full_data", mcp.Description("Force full-scan (true) or semantic retrieval (false) instead of automatic mode selection")),
			mcp.WithString("query_id", mcp.Description("Query identity from a previous response, for cached pagination")),
			mcp.WithString("user_id", mcp.Description("User to record this interaction for in chat history")),
		),
		handleQuery(client),
	)

	s.AddTool(
		mcp.NewTool("chat_history",
			mcp.WithDescription("List a user's recent query interactions, newest first"),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User whose history to list")),
			mcp.WithNumber("limit", mcp.Description("Maximum interactions to return")),
			mcp.WithNumber("offset", mcp.Description("Interactions to skip from the newest")),
		),
		handleHistory(client),
	)

	s.AddTool(
		mcp.NewTool("clear_history",
			mcp.WithDescription("Drop a user's chat history"),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("User whose history to drop")),
		),
		handleClearHistory(client),
	)

	s.AddTool(
		mcp.NewTool("clear_records",
			mcp.WithDescription("Drop the ingested dataset and all cached answers"),
		),
		handleClear(client),
	)

	s.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report dataset size, last ingestion time and cache occupancy"),
		),
		handleStatus(client),
	)

	return s, nil
}

func handleIngest(client *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := req.RequireString("records")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		count, err := client.Ingest(ctx, []byte(raw))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("ingested %d transactions", count)), nil
	}
}

func handleQuery(client *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := req.RequireString("prompt")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		queryReq := schema.Request{
			Prompt:   prompt,
			Page:     req.GetInt("page", 1),
			PageSize: req.GetInt("page_size", 0),
			ShowAll:  req.GetBool("show_all", false),
			QueryID:  req.GetString("query_id", ""),
			UserID:   req.GetString("user_id", ""),
		}
		if v, ok := req.GetArguments()["use_full_data"].(bool); ok {
			queryReq.UseFullData = &v
		}

		resp, err := client.Query(ctx, queryReq)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

func handleHistory(client *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		interactions, err := client.History().Recent(ctx, userID, req.GetInt("limit", 50), req.GetInt("offset", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := json.Marshal(interactions)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

func handleClearHistory(client *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.History().Clear(ctx, userID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("history cleared"), nil
	}
}

func handleClear(client *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := client.Clear(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("cleared"), nil
	}
}

func handleStatus(client *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := json.Marshal(client.Status())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}
