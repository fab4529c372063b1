package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// Writer writes rendered files to the output directory with optimized
// formatting (using the goimports library instead of the CLI).
type Writer struct {
	outDir string

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	FilesSkipped   int
	FilesRemoved   int
	TotalBytes     int64
	RenderTime     int64 // nanoseconds
	FormatTime     int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// NewWriter creates a writer rooted at the output directory.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		metrics: &WriterMetrics{},
	}
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// WriteFile renders a jennifer file, formats it, and writes it to name
// relative to the output directory.
func (w *Writer) WriteFile(f *jen.File, name string) error {
	// 1. Render the file
	start := time.Now()
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("render", name, "render file", err)
	}
	rendered := time.Now()

	// 2. Format using goimports (removes unused imports and adds missing ones)
	fullPath := filepath.Join(w.outDir, name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return NewGenerationError("format", name, fmt.Sprintf("unformatted written to %s", debugPath), err)
	}
	formattedAt := time.Now()

	// 3. Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", name, "create directory", err)
	}

	// 4. Write file
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return NewGenerationError("write", name, "write file", err)
	}

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.metrics.RenderTime += rendered.Sub(start).Nanoseconds()
	w.metrics.FormatTime += formattedAt.Sub(rendered).Nanoseconds()
	w.metrics.WriteTime += time.Since(formattedAt).Nanoseconds()
	w.mu.Unlock()

	return nil
}

// RemoveFile deletes a previously generated file if it exists.
func (w *Writer) RemoveFile(name string) error {
	err := os.Remove(filepath.Join(w.outDir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.metrics.FilesRemoved++
	w.mu.Unlock()
	return nil
}

// MarkSkipped records inputs skipped by the snapshot manifest.
func (w *Writer) MarkSkipped(n int) {
	w.mu.Lock()
	w.metrics.FilesSkipped += n
	w.mu.Unlock()
}
