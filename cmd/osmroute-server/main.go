package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LdDl/osmroute"
	"github.com/LdDl/osmroute/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	osmFileName   = flag.String("f", "../map.osm", "Filename of OSM data (*.osm / *.xml / *.osm.pbf)")
	host          = flag.String("host", "0.0.0.0", "Host to listen on")
	port          = flag.Int("port", 8080, "Port to listen on")
	logLevel      = flag.String("log-level", "info", "Logging level: debug, info, warn, error")
	logFormat     = flag.String("log-format", "text", "Logging format: text or json")
	maxExpansions = flag.Int("max-expansions", 0, "Maximum number of expanded nodes for single search (0 means no limit)")
	roadTypesStr  = flag.String("types", "", "Set of routable road types (separated by commas). Everything but footways when empty")
	strict        = flag.Bool("strict", true, "Fail on ways which reference missing nodes")
)

func main() {
	flag.Parse()

	cfg := server.DefaultConfig()
	cfg.Host = *host
	cfg.Port = *port
	cfg.MaxExpansions = *maxExpansions
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	logger := server.NewLogger(cfg.Logging, os.Stdout)

	options := []func(*osmroute.Parser){
		osmroute.WithStrictMode(*strict),
	}
	if *roadTypesStr != "" {
		roadTypes, err := osmroute.ParseRoadTypes(*roadTypesStr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		options = append(options, osmroute.WithRoadTypes(roadTypes))
	}
	parser := osmroute.NewParser(options...)

	logger.Info("reading map", "file", *osmFileName, "parser", parser.String())
	graph, err := parser.ReadGraph(*osmFileName)
	if err != nil {
		logger.Error("failed to read map", "error", err)
		os.Exit(1)
	}
	logger.Info("graph is ready",
		"nodes", graph.NodesNum(),
		"routable_nodes", graph.RoutableNodesNum(),
		"ways", len(graph.Ways()),
		"metric_scale", graph.MetricScale(),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := server.NewMetrics(registry)

	router := server.NewRouter(logger, server.RouterDependencies{
		Graph:         graph,
		Metrics:       metrics,
		Gatherer:      registry,
		MaxExpansions: cfg.MaxExpansions,
	})
	srv := server.New(logger, cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
}
