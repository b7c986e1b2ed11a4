package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/twmcp-io/twmcp/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "health":
		cmdHealth(os.Args[2:])
	case "tools":
		cmdTools(os.Args[2:])
	case "call":
		cmdCall(os.Args[2:])
	case "config":
		if len(os.Args) < 3 || os.Args[2] != "check" {
			fmt.Fprintln(os.Stderr, "usage: twmcpctl config check")
			os.Exit(1)
		}
		cmdConfigCheck()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`twmcpctl - control a running twmcpd

Usage:
  twmcpctl health                          Check daemon health
  twmcpctl tools                           List exposed tools
  twmcpctl call <tool> [key=value ...]     Invoke a tool
  twmcpctl config check                    Validate local credentials/config

Flags (health/tools/call):
  -url   Daemon base URL (default $TWMCP_URL or http://127.0.0.1:8083)`)
}

func baseURLFlag(fs *flag.FlagSet) *string {
	def := os.Getenv("TWMCP_URL")
	if def == "" {
		def = "http://127.0.0.1:8083"
	}
	return fs.String("url", def, "Daemon base URL")
}

// --- commands ---

func cmdHealth(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	url := baseURLFlag(fs)
	fs.Parse(args)

	resp, err := http.Get(strings.TrimRight(*url, "/") + "/api/health")
	if err != nil {
		fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fatal(fmt.Errorf("daemon unhealthy: HTTP %d", resp.StatusCode))
	}
	fmt.Println("ok")
}

func cmdTools(args []string) {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	url := baseURLFlag(fs)
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := newRPCClient(*url)
	if err := c.initialize(ctx); err != nil {
		fatal(err)
	}

	result, err := c.call(ctx, "tools/list", nil)
	if err != nil {
		fatal(err)
	}

	var list struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(result, &list); err != nil {
		fatal(fmt.Errorf("parse tools list: %w", err))
	}

	for _, t := range list.Tools {
		fmt.Printf("%-15s %s\n", t.Name, t.Description)
	}
}

func cmdCall(args []string) {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	url := baseURLFlag(fs)
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "usage: twmcpctl call <tool> [key=value ...]")
		os.Exit(1)
	}
	name := rest[0]

	arguments, err := parseArguments(rest[1:])
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c := newRPCClient(*url)
	if err := c.initialize(ctx); err != nil {
		fatal(err)
	}

	result, err := c.call(ctx, "tools/call", map[string]any{
		"name":      name,
		"arguments": arguments,
	})
	if err != nil {
		fatal(err)
	}

	var callResult struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(result, &callResult); err != nil {
		fatal(fmt.Errorf("parse tool result: %w", err))
	}

	for _, content := range callResult.Content {
		if content.Type == "text" {
			fmt.Println(content.Text)
		}
	}
	if callResult.IsError {
		os.Exit(1)
	}
}

func cmdConfigCheck() {
	creds := config.CredentialsFromEnv()
	if err := creds.Validate(); err != nil {
		fatal(err)
	}
	if _, err := config.LoadFromEnv(); err != nil {
		fatal(err)
	}
	fmt.Println("configuration ok")
}

// parseArguments turns key=value pairs into tool arguments. Values that
// parse as JSON keep their type (numbers, booleans), everything else is a
// string.
func parseArguments(kvs []string) (map[string]any, error) {
	arguments := make(map[string]any, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q is not key=value", kv)
		}
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			arguments[k] = parsed
		} else {
			arguments[k] = v
		}
	}
	return arguments, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// --- JSON-RPC 2.0 over HTTP ---

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcClient struct {
	url    string
	client *http.Client
	nextID atomic.Int64
}

func newRPCClient(baseURL string) *rpcClient {
	return &rpcClient{
		url:    strings.TrimRight(baseURL, "/") + "/mcp",
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *rpcClient) initialize(ctx context.Context) error {
	_, err := c.call(ctx, "initialize", map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]string{
			"name":    "twmcpctl",
			"version": "0.1.0",
		},
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

func (c *rpcClient) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(extractJSON(body, resp.Header.Get("Content-Type")), &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

// extractJSON pulls the JSON payload out of a possibly SSE-framed response
// body. The streamable HTTP transport may answer either way; the final data
// line carries the response.
func extractJSON(body []byte, contentType string) []byte {
	if !strings.Contains(contentType, "text/event-stream") {
		return body
	}
	payload := body
	for _, line := range strings.Split(string(body), "\n") {
		if data, ok := strings.CutPrefix(line, "data:"); ok {
			if trimmed := strings.TrimSpace(data); trimmed != "" {
				payload = []byte(trimmed)
			}
		}
	}
	return payload
}
