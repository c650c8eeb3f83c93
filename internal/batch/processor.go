// Package batch converts directories of extracted TEX files to
// standard image formats using a worker pool.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ff7-field-tools/internal/tex"
	"ff7-field-tools/internal/texconv"
)

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir      string
	OutputDir     string
	Format        string
	Palette       int
	ThumbnailSize int
	Workers       int
}

// Result holds the outcome of converting one file.
type Result struct {
	Source  string `json:"source"`
	Output  string `json:"output,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FindTextures walks dir and returns all .tex files, case-insensitive.
func FindTextures(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.EqualFold(filepath.Ext(path), ".tex") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	return files, nil
}

// Run converts all files using a worker pool and reports per-file
// results in input order.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
				}
			}
		}
	}()

	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)
	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	res := Result{Source: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	t, err := tex.Decode(data)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Width = int(t.Width)
	res.Height = int(t.Height)

	img := texconv.Image(t, cfg.Palette)
	if cfg.ThumbnailSize > 0 {
		img = texconv.Thumbnail(img, cfg.ThumbnailSize)
	}

	rel, err := filepath.Rel(cfg.InputDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	out := filepath.Join(cfg.OutputDir, stem+"."+cfg.Format)

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(out)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := texconv.Write(f, img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = out
	res.Success = true
	return res
}
