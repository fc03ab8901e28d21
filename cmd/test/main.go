package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/a2a"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/web"
	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	testColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	labelColor   = color.New(color.FgYellow)
	noticeColor  = color.New(color.FgMagenta)
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string, timeout time.Duration) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the campaign generator")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, extract, campaign, a2a")
	product := flag.String("product", web.DefaultProduct, "Product details for campaign tests")
	audience := flag.String("audience", web.DefaultAudience, "Target audience for campaign tests")
	timeout := flag.Duration("timeout", 3*time.Minute, "HTTP timeout per request")
	flag.Parse()

	tc := NewTestClient(*baseURL, *timeout)
	brief := models.Brief{Product: *product, Audience: *audience}

	printHeader("Marketing Campaign Generator - Test Suite")
	testColor.Printf("Base URL: %s\n\n", tc.baseURL)

	tests := map[string]func() bool{
		"health":     tc.testHealthCheck,
		"agent-card": tc.testAgentCard,
		"extract":    tc.testExtract,
		"campaign":   func() bool { return tc.testCampaign(brief) },
		"a2a":        func() bool { return tc.testA2A(brief) },
	}
	order := []string{"health", "agent-card", "extract", "campaign", "a2a"}

	if *testType == "all" {
		tc.runAll(order, tests)
		return
	}
	fn, ok := tests[*testType]
	if !ok {
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Printf("\nAvailable tests: all, %s\n", strings.Join(order, ", "))
		os.Exit(1)
	}
	if !fn() {
		os.Exit(1)
	}
}

func (tc *TestClient) runAll(order []string, tests map[string]func() bool) {
	passed, failed := 0, 0
	for _, name := range order {
		if tests[name]() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	successColor.Printf("Passed: %d\n", passed)
	errorColor.Printf("Failed: %d\n", failed)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// do sends a request and returns the body when the status matches want.
func (tc *TestClient) do(method, path string, payload any, want int) ([]byte, bool) {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			printError(fmt.Sprintf("Failed to encode request: %v", err))
			return nil, false
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		printError(fmt.Sprintf("Failed to build request: %v", err))
		return nil, false
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := tc.client.Do(req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return nil, false
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status %d in %s\n", resp.StatusCode, time.Since(start).Round(time.Millisecond))
	if resp.StatusCode != want {
		printError(fmt.Sprintf("Expected status %d, got %d", want, resp.StatusCode))
		fmt.Printf("Response: %s\n", string(data))
		return nil, false
	}
	return data, true
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	body, ok := tc.do(http.MethodGet, "/health", nil, http.StatusOK)
	if !ok {
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	body, ok := tc.do(http.MethodGet, "/.well-known/agent.json", nil, http.StatusOK)
	if !ok {
		return false
	}

	var card map[string]any
	if err := json.Unmarshal(body, &card); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	for _, field := range []string{"name", "description", "version", "url", "capabilities", "skills"} {
		if _, ok := card[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testExtract() bool {
	printTestHeader("Testing Section Extraction")

	document := "Ad Copy:\nBuy Now!\n\nEmail Marketing Copy:\nHello there"
	cases := []struct {
		label, mode, want string
	}{
		{extractor.AdCopy, "lines", "Buy Now!"},
		{extractor.EmailCopy, "pattern", "Hello there"},
		{extractor.RadioScript, "lines", ""},
	}

	for _, c := range cases {
		body, ok := tc.do(http.MethodPost, "/api/extract", map[string]string{
			"document": document,
			"label":    c.label,
			"mode":     c.mode,
		}, http.StatusOK)
		if !ok {
			return false
		}

		var got struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(body, &got); err != nil {
			printError(fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}
		if got.Content != c.want {
			printError(fmt.Sprintf("%s (%s): expected %q, got %q", c.label, c.mode, c.want, got.Content))
			return false
		}
	}

	printSuccess("Extraction matches expected sections")
	return true
}

func (tc *TestClient) testCampaign(brief models.Brief) bool {
	printTestHeader("Testing Campaign Generation API")
	labelColor.Print("Product: ")
	fmt.Println(brief.Product)
	labelColor.Print("Audience: ")
	fmt.Println(brief.Audience)

	body, ok := tc.do(http.MethodPost, "/api/campaigns", brief, http.StatusCreated)
	if !ok {
		return false
	}

	var c models.Campaign
	if err := json.Unmarshal(body, &c); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if c.ID == "" || c.Document == "" {
		printError("Campaign is missing its id or generated document")
		return false
	}

	printSuccess(fmt.Sprintf("Campaign %s generated", c.ID))
	printCampaign(&c)

	if _, ok := tc.do(http.MethodGet, "/api/campaigns/"+c.ID, nil, http.StatusOK); !ok {
		noticeColor.Println("! Campaign was not retrievable; check the store configuration")
	}
	return true
}

func (tc *TestClient) testA2A(brief models.Brief) bool {
	printTestHeader("Testing A2A Campaign Endpoint")

	text := fmt.Sprintf("Product: %s\nAudience: %s", brief.Product, brief.Audience)
	params, _ := json.Marshal(a2a.MessageParams{
		Message: a2a.A2AMessage{
			Kind:  "message",
			Role:  a2a.RoleUser,
			Parts: []a2a.MessagePart{a2a.TextPart(text)},
		},
		Configuration: a2a.MessageConfiguration{
			Blocking:            true,
			AcceptedOutputModes: []string{"text", "data"},
		},
	})
	id, _ := json.Marshal(fmt.Sprintf("test-%d", time.Now().Unix()))
	request := a2a.JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "message/send",
		Params:  params,
	}

	body, ok := tc.do(http.MethodPost, "/a2a/campaign", request, http.StatusOK)
	if !ok {
		return false
	}

	var resp struct {
		Error  *a2a.RPCError   `json:"error"`
		Result *a2a.TaskResult `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if resp.Error != nil {
		printError(fmt.Sprintf("Request returned error %d: %s", resp.Error.Code, resp.Error.Message))
		return false
	}
	if resp.Result == nil {
		printError("Response has no result")
		return false
	}
	if resp.Result.Status.State != a2a.StateCompleted {
		printError(fmt.Sprintf("Expected state '%s', got '%s'", a2a.StateCompleted, resp.Result.Status.State))
		if msg := resp.Result.Status.Message; msg != nil && len(msg.Parts) > 0 {
			fmt.Println(msg.Parts[0].Text)
		}
		return false
	}

	printSuccess("A2A task completed")
	if msg := resp.Result.Status.Message; msg != nil {
		fmt.Println(strings.Repeat("=", 80))
		for _, part := range msg.Parts {
			fmt.Println(part.Text)
		}
		fmt.Println(strings.Repeat("=", 80))
	}
	labelColor.Println("Artifacts:")
	for _, a := range resp.Result.Artifacts {
		fmt.Printf("- %s\n", a.Name)
	}
	return true
}

func printCampaign(c *models.Campaign) {
	sections := []struct{ title, body string }{
		{extractor.AdCopy, c.AdCopy},
		{extractor.EmailCopy, c.Email},
		{extractor.SocialPosts, c.Social},
		{extractor.RadioScript, c.RadioScript},
		{extractor.AudioBrief, c.AudioBrief},
	}
	for _, s := range sections {
		body := s.body
		if body == "" {
			body = extractor.Fallback
		}
		labelColor.Printf("\n%s\n", s.title)
		fmt.Println(body)
	}

	fmt.Println()
	labelColor.Print("Image: ")
	fmt.Println(c.ImageURL)
	labelColor.Print("Audio: ")
	fmt.Println(c.AudioURL)
	for _, n := range c.Notices {
		noticeColor.Printf("! [%s] %s\n", n.Stage, n.Message)
	}
}

func printHeader(text string) {
	line := strings.Repeat("=", len(text)+4)
	headerColor.Printf("\n%s\n= %s =\n%s\n\n", line, text, line)
}

func printTestHeader(text string) {
	testColor.Printf("[TEST] %s\n", text)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	successColor.Printf("✓ %s\n", text)
}

func printError(text string) {
	errorColor.Printf("✗ %s\n", text)
}

func printJSON(data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		labelColor.Println("\nResponse:")
		fmt.Println(pretty.String())
	}
}
