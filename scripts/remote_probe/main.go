// Command remote_probe exercises every configured record-store collection and
// reports reachability, latency and failure classification. It is meant for
// pre-deploy checks and for diagnosing which upstream a degraded console is
// suffering from.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/CristopherGuzmanVelarde/school-admin-api/internal/remote"
	"github.com/CristopherGuzmanVelarde/school-admin-api/pkg/config"
	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
)

type probe struct {
	Collection string
	BaseURL    string
	Critical   bool
}

type result struct {
	Probe    probe
	Outcome  string
	Records  int
	Duration time.Duration
	Err      error
}

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "per-collection timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	probes := []probe{
		{Collection: "grades", BaseURL: cfg.Remote.GradesURL, Critical: true},
		{Collection: "notifications", BaseURL: cfg.Remote.NotificationsURL, Critical: true},
		{Collection: "students", BaseURL: cfg.Remote.StudentsURL},
		{Collection: "teachers", BaseURL: cfg.Remote.TeachersURL},
	}

	var results []result
	criticalFailures := 0
	for _, p := range probes {
		res := run(p, timeout)
		if res.Err != nil && p.Critical {
			criticalFailures++
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Critical failures: %d\n", criticalFailures)
	if criticalFailures > 0 {
		os.Exit(1)
	}
}

func run(p probe, timeout time.Duration) result {
	client := remote.NewClient(p.BaseURL, timeout, nil)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var records []map[string]interface{}
	start := time.Now()
	err := client.Get(ctx, "", &records)
	elapsed := time.Since(start)

	res := result{Probe: p, Duration: elapsed, Records: len(records)}
	if err != nil {
		// An empty collection answers 404 on some deployments; that is
		// reachable, not broken.
		if appErrors.IsNotFound(err) {
			res.Outcome = "EMPTY"
			return res
		}
		res.Outcome = string(appErrors.KindOf(err))
		res.Err = err
		return res
	}
	res.Outcome = "OK"
	return res
}

func printReport(results []result) {
	fmt.Println("Record Store Probe Report")
	fmt.Println("=========================")
	for _, res := range results {
		fmt.Printf("[%s] %s (%s)\n", res.Outcome, res.Probe.Collection, res.Probe.BaseURL)
		fmt.Printf("  Latency: %s | Records: %d | Critical: %t\n", res.Duration, res.Records, res.Probe.Critical)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
		}
	}
}
