// Command smoke exercises a running ad copy agent over HTTP.
package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	testColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	labelColor   = color.New(color.FgYellow)
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			// Generation polls for up to a minute server side.
			Timeout: 90 * time.Second,
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var baseURL string
	var tc *TestClient

	root := &cobra.Command{
		Use:           "smoke",
		Short:         "Smoke tests for the ad copy agent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			tc = NewTestClient(baseURL)
			printHeader("Ad Copy Agent - Test Suite")
			testColor.Printf("Base URL: %s\n\n", tc.baseURL)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tc.runAllTests()
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the agent")

	root.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Check GET /health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return result(tc.testHealthCheck())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "options",
		Short: "Check GET /api/options",
		RunE: func(cmd *cobra.Command, args []string) error {
			return result(tc.testOptions())
		},
	})

	var tone, audience string
	generate := &cobra.Command{
		Use:   "generate [description]",
		Short: "POST /api/generate-ad with a product description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "A sustainable fashion e-commerce platform for eco-conscious shoppers"
			if len(args) == 1 {
				input = args[0]
			}
			return result(tc.testGenerate(input, tone, audience))
		},
	}
	generate.Flags().StringVar(&tone, "tone", "professional", "Tone of the ad")
	generate.Flags().StringVar(&audience, "audience", "young-professionals", "Target audience")
	root.AddCommand(generate)

	return root
}

func result(ok bool) error {
	if !ok {
		return fmt.Errorf("test failed")
	}
	return nil
}

func (tc *TestClient) runAllTests() error {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Options", tc.testOptions},
		{"Ad Generation", func() bool {
			return tc.testGenerate("A sustainable fashion e-commerce platform for eco-conscious shoppers", "casual", "millennials")
		}},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
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
		return fmt.Errorf("%d test(s) failed", failed)
	}
	return nil
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testOptions() bool {
	printTestHeader("Testing Options Endpoint")

	url := fmt.Sprintf("%s/api/options", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	var options map[string]interface{}
	if err := json.Unmarshal(body, &options); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"tones", "audiences", "defaultTone", "defaultAudience", "feels"} {
		if _, ok := options[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Options are valid")
	return true
}

func (tc *TestClient) testGenerate(input, tone, audience string) bool {
	printTestHeader("Testing Ad Generation")

	url := fmt.Sprintf("%s/api/generate-ad", tc.baseURL)
	fmt.Printf("POST %s\n", url)
	labelColor.Print("Product: ")
	fmt.Printf("%s (tone=%s, audience=%s)\n\n", input, tone, audience)

	payload, _ := json.Marshal(map[string]string{
		"userInput": input,
		"tone":      tone,
		"audience":  audience,
	})

	start := time.Now()
	resp, err := tc.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var response struct {
		Error     string            `json:"error"`
		AdContent map[string]string `json:"adContent"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d (%s)", resp.StatusCode, response.Error))
		printAd(response.AdContent)
		return false
	}

	for _, field := range []string{"headline", "tagline", "description", "callToAction"} {
		if response.AdContent[field] == "" {
			printError(fmt.Sprintf("Missing ad field: %s", field))
			return false
		}
	}

	printSuccess(fmt.Sprintf("Ad generated in %s", time.Since(start).Round(time.Millisecond)))
	printAd(response.AdContent)
	return true
}

func printAd(ad map[string]string) {
	fmt.Println(strings.Repeat("=", 80))
	for _, field := range []string{"headline", "tagline", "description", "callToAction"} {
		labelColor.Printf("%-13s ", field+":")
		fmt.Println(ad[field])
	}
	fmt.Println(strings.Repeat("=", 80))
}

func printHeader(text string) {
	headerColor.Println(strings.Repeat("=", len(text)+4))
	headerColor.Printf("= %s =\n", text)
	headerColor.Println(strings.Repeat("=", len(text)+4))
	fmt.Println()
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
