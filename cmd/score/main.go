// Command score runs the full benchmarking and scoring pipeline for one
// company and prints the result as JSON. It stands in for the out-of-scope
// request-handling layer.
//
// Usage:
//
//	score -cik 320193 -peers peers.hjson -erp "NetSuite" -size midmarket -employees 1200
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"opsbench/pkg/core/config"
	"opsbench/pkg/core/edgar"
	"opsbench/pkg/core/peers"
	"opsbench/pkg/core/pipeline"
	"opsbench/pkg/models"
)

func main() {
	// A .env file is optional; environment variables may be set directly.
	_ = godotenv.Load()

	var (
		cik       = flag.Int64("cik", 0, "SEC CIK of the company (required)")
		peersPath = flag.String("peers", "", "path to a peer-lists file (hjson or json)")
		erpName   = flag.String("erp", "", "company ERP system name")
		sizeBkt   = flag.String("size", "", "declared size bucket: smb, midmarket, enterprise")
		employees = flag.Int("employees", 0, "employee count, 0 if unknown")
		timeout   = flag.Duration("timeout", 2*time.Minute, "overall run timeout")
		debug     = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if *cik <= 0 {
		logger.Fatal().Msg("-cik is required")
	}

	req := pipeline.Request{
		CIK:         *cik,
		ERPName:     *erpName,
		CompanySize: *sizeBkt,
	}
	if *employees > 0 {
		req.EmployeeCount = models.Int(*employees)
	}

	if *peersPath != "" {
		doc, err := os.ReadFile(*peersPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *peersPath).Msg("cannot read peer lists")
		}
		lists, err := peers.ParsePeerLists(doc)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *peersPath).Msg("cannot parse peer lists")
		}
		req.SICPeers = lists.SIC
		req.CompetitorPeers = lists.Competitors
		req.CuratedPeers = lists.Curated
	}

	client := edgar.NewClient(logger)
	defer client.Close()

	orch := pipeline.NewOrchestrator(client, config.Default(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := orch.Run(ctx, req)
	if err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot encode result")
	}
	fmt.Println(string(out))
}
