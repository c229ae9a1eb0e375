package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"pubfinder/internal"
	"pubfinder/internal/config"
	"pubfinder/internal/openalex"
	"pubfinder/internal/pipeline"
	"pubfinder/internal/registry"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path (overrides OUTPUT_PATH)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) != "" {
			cfg.OutputPath = *out
		}
		must(run(cfg))
	default:
		usage()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Require("REGISTRY_API_URL", cfg.RegistryAPIURL); err != nil {
		return err
	}
	if err := cfg.Require("REGISTRY_API_KEY", cfg.RegistryAPIKey); err != nil {
		return err
	}
	if err := cfg.Require("OPENALEX_ROR_ID", cfg.InstitutionRORID); err != nil {
		return err
	}
	if err := cfg.Require("OPENALEX_INSTITUTION_ID", cfg.OpenAlexInstitutionID); err != nil {
		return err
	}

	ctx := context.Background()

	registryResult, err := registry.NewClient(cfg).FetchAll(ctx)
	if err != nil {
		return err
	}
	if registryResult.Outcome == internal.FetchPartial {
		fmt.Fprintf(os.Stderr, "warning: registry fetch incomplete, comparing against partial data: %s\n",
			registryResult.PartialReason)
	}
	registryDOIs := pipeline.RegistryDOISet(registryResult.Records)
	fmt.Printf("registry records fetched: %d (distinct DOIs: %d)\n",
		len(registryResult.Records), len(registryDOIs))

	aggregatorResult, err := openalex.NewClient(cfg).FetchWorks(ctx)
	if err != nil {
		return err
	}
	for _, skipped := range aggregatorResult.Skipped {
		fmt.Fprintf(os.Stderr, "skipped work %s: %s\nrecord: %s\n",
			skipped.WorkID, skipped.Reason, skipped.RawJSON)
	}
	if len(aggregatorResult.Skipped) > 0 {
		fmt.Fprintf(os.Stderr, "skipped %d malformed works\n", len(aggregatorResult.Skipped))
	}

	result := pipeline.Reconcile(aggregatorResult.Works, registryDOIs)
	fmt.Printf("works without DOIs: %d\n", result.NoDOICount)

	if err := pipeline.ExportMissingToXLSX(result.Missing, cfg.OutputPath); err != nil {
		return err
	}
	fmt.Printf("report saved: %d missing works written to %s\n", len(result.Missing), cfg.OutputPath)
	return nil
}

func usage() {
	fmt.Println("usage: pubfinder <command>")
	fmt.Println("commands:")
	fmt.Println("  run [--out=./out/report.xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
