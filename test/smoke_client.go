//go:build ignore

// Manual smoke check against a running service:
//
//	go run test/smoke_client.go [base-url]
//
// Hits every fast endpoint once and prints what each answered. The slow
// and cpu-spike endpoints are skipped because they block for seconds.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	base := "http://localhost:8080"
	if len(os.Args) > 1 {
		base = strings.TrimRight(os.Args[1], "/")
	}

	paths := []string{
		"/",
		"/health",
		"/api/process",
		"/api/database",
		"/api/permission",
		"/api/network",
		"/api/memory-leak",
		"/api/crash",
		"/api/stress",
		"/no-such-path",
	}

	client := &http.Client{Timeout: 10 * time.Second}
	failures := 0

	for _, path := range paths {
		resp, err := client.Get(base + path)
		if err != nil {
			fmt.Printf("%-18s transport error: %v\n", path, err)
			failures++
			continue
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		resp.Body.Close()
		fmt.Printf("%-18s %d %s\n", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if failures > 0 {
		os.Exit(1)
	}
}
