// Package main provides a standalone health check command for MealKit.
// It is intended for Docker HEALTHCHECK directives and monitoring scripts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mealkit/v1/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

func main() {
	var (
		url      = flag.String("url", "http://localhost:8080/health", "Health endpoint to probe")
		timeout  = flag.Duration("timeout", 5*time.Second, "Request timeout")
		verbose  = flag.Bool("verbose", false, "Print the full health report")
		degraded = flag.Bool("allow-degraded", true, "Treat degraded status as success")
	)
	flag.Parse()

	os.Exit(probe(*url, *timeout, *verbose, *degraded))
}

func probe(url string, timeout time.Duration, verbose, allowDegraded bool) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health-check: build request: %v\n", err)
		return exitCodeError
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health-check: %v\n", err)
		return exitCodeError
	}
	defer resp.Body.Close()

	var report healthcheck.Response
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		fmt.Fprintf(os.Stderr, "health-check: decode response: %v\n", err)
		return exitCodeError
	}

	if verbose {
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
	} else {
		fmt.Printf("status=%s version=%s checks=%d\n", report.Status, report.Version, len(report.Checks))
	}

	switch report.Status {
	case healthcheck.StatusHealthy:
		return exitCodeSuccess
	case healthcheck.StatusDegraded:
		if allowDegraded {
			return exitCodeSuccess
		}
		return exitCodeFailure
	default:
		for _, check := range report.Checks {
			if check.Status != healthcheck.StatusHealthy {
				fmt.Fprintf(os.Stderr, "health-check: %s: %s\n", check.Name, check.Message)
			}
		}
		return exitCodeFailure
	}
}
