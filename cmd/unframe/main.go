// Command unframe straightens photographs and removes their decorative
// borders: it detects where the border ends near each corner, solves the
// perspective projection of the content rectangle, and writes the
// rectified result as PNG.
//
// Usage:
//
//	unframe [-o output]... [flags] input...
//
// With multiple inputs, a single -o names the target directory; repeated
// -o flags pair with inputs one-to-one.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"unframe/config"
	"unframe/pipeline"
	"unframe/util/log"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var outputs stringList
	flag.Var(&outputs, "o", "output file or directory (repeatable)")
	cfgPath := flag.String("config", "", "path to YAML config file")
	threshold := flag.Int("threshold", 0, "border transition threshold (summed channel difference)")
	searchFrac := flag.Float64("search-frac", 0, "corner search depth as a fraction of the smaller dimension")
	width := flag.Int("width", 0, "force output width (requires -height)")
	height := flag.Int("height", 0, "force output height (requires -width)")
	filter := flag.String("filter", "", "sampling filter: bilinear or nearest")
	workers := flag.Int("workers", 0, "parallel jobs (default: number of CPUs)")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-o output]... [flags] input...\n", config.AppName)
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *threshold > 0 {
		cfg.Detection.Threshold = *threshold
	}
	if *searchFrac > 0 {
		cfg.Detection.SearchFraction = *searchFrac
	}
	if *width > 0 && *height > 0 {
		cfg.Output.Width = *width
		cfg.Output.Height = *height
	}
	if *filter != "" {
		cfg.Sampling.Filter = *filter
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	jobs, err := pipeline.ResolveJobs(inputs, outputs)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if failed := pipeline.Run(cfg, jobs); failed > 0 {
		log.Printf("Failed to convert %d of %d inputs", failed, len(jobs))
		os.Exit(1)
	}
}
