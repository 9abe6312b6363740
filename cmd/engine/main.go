package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
	"github.com/ExpiredOTM/RealityCheck/pkg/pipeline"
	"github.com/ExpiredOTM/RealityCheck/pkg/sentiment"
)

// itemOutput is one line of analysis output.
type itemOutput struct {
	Item    pipeline.Item             `json:"item"`
	Record  *pipeline.Record          `json:"record"`
	Summary *pipeline.AnalysisSummary `json:"summary,omitempty"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "Path to the YAML configuration file")
		inputPath   = flag.String("input", "-", "Input file with one text item per line ('-' for stdin)")
		platformTag = flag.String("platform", "cli", "Platform tag attached to each item")
		metricsPort = flag.Int("metrics-port", 0, "Port for Prometheus metrics (0 disables)")
		initTimeout = flag.Duration("init-timeout", 35*time.Second, "Budget for pipeline initialization")
	)
	flag.Parse()

	if _, err := logging.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}
	defer logging.Sync()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logging.Fatalf("Failed to load config: %v", err)
	}

	var classifier sentiment.Classifier
	if cfg.Sentiment.Endpoint != "" {
		classifier = sentiment.NewHTTPClassifier(
			cfg.Sentiment.Endpoint,
			config.Duration(cfg.Sentiment.RequestTimeout, 2*time.Second),
		)
	}

	p, err := pipeline.New(cfg, classifier)
	if err != nil {
		logging.Fatalf("Failed to build pipeline: %v", err)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), *initTimeout)
	p.Init(initCtx)
	cancel()

	if *metricsPort > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", *metricsPort)
			logging.Infof("Serving metrics on %s/metrics", addr)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logging.Errorf("Metrics server failed: %v", err)
			}
		}()
	}

	in := os.Stdin
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			logging.Fatalf("Failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	var items []pipeline.Item
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		items = append(items, pipeline.NewItem(line, *platformTag, "text"))
	}
	if err := scanner.Err(); err != nil {
		logging.Fatalf("Failed to read input: %v", err)
	}

	records := p.AnalyzeBatch(context.Background(), items)

	enc := json.NewEncoder(os.Stdout)
	for i, rec := range records {
		out := itemOutput{Item: items[i], Record: rec}
		if rec != nil {
			s := p.Summarize(rec)
			out.Summary = &s
		}
		if err := enc.Encode(out); err != nil {
			logging.Fatalf("Failed to encode output: %v", err)
		}
	}
}
