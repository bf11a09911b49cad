package main

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pnet-tools/go-pnet/petri"
	"github.com/pnet-tools/go-pnet/pnml"
	"github.com/pnet-tools/go-pnet/results"
)

// newLogger builds the command logger. Verbose mode shows the parser
// and analysis warnings on stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadNet parses a PNML model file.
func loadNet(path string, logger *zap.Logger) (*petri.Net, error) {
	net, err := pnml.NewParser(logger).ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return net, nil
}

// netInfo summarizes a net for the report header.
func netInfo(net *petri.Net) results.NetInfo {
	return results.NetInfo{
		Name:        net.Name,
		Places:      len(net.Places()),
		Transitions: len(net.Transitions()),
		Arcs:        len(net.Arcs()),
	}
}

// parseWeights reads a "place=value,place=value" weight vector.
func parseWeights(spec string, net *petri.Net) (map[string]float64, error) {
	weights := make(map[string]float64)
	if spec == "" {
		return weights, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		place, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q, expected place=value", pair)
		}
		place = strings.TrimSpace(place)
		if !net.HasPlace(place) {
			return nil, fmt.Errorf("weight for unknown place %q", place)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value %q: %w", value, err)
		}
		weights[place] = w
	}
	return weights, nil
}

// finishReport optionally writes the report to a JSON file and a run archive.
func finishReport(report *results.Report, jsonPath, dbPath string) error {
	if jsonPath != "" {
		if err := results.WriteJSON(report, jsonPath); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", jsonPath)
	}
	if dbPath != "" {
		store, err := results.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(report); err != nil {
			return err
		}
		fmt.Printf("Run %s archived in %s\n", report.RunID, dbPath)
	}
	return nil
}
