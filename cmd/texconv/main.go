// Command texconv batch-converts extracted TEX files to WebP, TGA or
// PNG images.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ff7-field-tools/internal/batch"
	"ff7-field-tools/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	inputDir := flag.String("input", "", "Directory of extracted field files")
	outputDir := flag.String("output", "", "Output directory (default: <input>/converted)")
	format := flag.String("format", "", "Output format: webp, tga or png (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Convert only first N files for testing")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
	})

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no input directory. Use -input or a config file.")
		os.Exit(1)
	}

	files, err := batch.FindTextures(cfg.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning input: %v\n", err)
		os.Exit(1)
	}

	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}

	if len(files) == 0 {
		fmt.Println("No TEX files to convert.")
		os.Exit(0)
	}

	fmt.Printf("TEX -> %s converter\n", cfg.Format)
	fmt.Printf("Files: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		InputDir:      cfg.InputDir,
		OutputDir:     cfg.OutputDir,
		Format:        cfg.Format,
		Palette:       cfg.Palette,
		ThumbnailSize: cfg.ThumbnailSize,
		Workers:       cfg.Workers,
	}, files)

	ok, failed := 0, 0
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %s\n", r.Source, r.Error)
		}
	}

	manifest := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifest, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest: %v\n", err)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %s: %d converted, %d failed\n", time.Since(start).Round(time.Millisecond), ok, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
