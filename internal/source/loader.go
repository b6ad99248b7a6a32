package source

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Format identifies an entry file encoding.
type Format string

// Supported formats.
const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatText   Format = "text"
)

// headerPrefix marks a header line in text sources.
const headerPrefix = "# "

// maxLineBytes bounds a single NDJSON or text line.
const maxLineBytes = 1024 * 1024

// Common loader errors.
var (
	ErrNoPaths           = errors.New("at least one source path is required")
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

// DetectFormat picks a format from the file extension. Unknown extensions are text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	default:
		return FormatText
	}
}

// Load reads every entry from the file at path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	entries, err := Decode(f, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, nil
}

// Decode reads entries encoded as format from r.
func Decode(r io.Reader, format Format) ([]Entry, error) {
	switch format {
	case FormatYAML:
		var entries []Entry
		if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return entries, nil
	case FormatJSON:
		var entries []Entry
		if err := json.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return entries, nil
	case FormatNDJSON:
		return decodeLines(r, func(line string, lineNo int) (Entry, error) {
			var e Entry
			if err := json.Unmarshal([]byte(line), &e); err != nil {
				return Entry{}, fmt.Errorf("line %d: %w", lineNo, err)
			}
			return e, nil
		})
	case FormatText:
		return decodeLines(r, func(line string, _ int) (Entry, error) {
			return parseTextLine(line), nil
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// decodeLines applies parse to every non-blank line.
func decodeLines(r io.Reader, parse func(line string, lineNo int) (Entry, error)) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := parse(line, lineNo)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseTextLine turns "# Section" into a header and "title<TAB>detail" into a detailed entry.
func parseTextLine(line string) Entry {
	if strings.HasPrefix(line, headerPrefix) {
		return Entry{Title: strings.TrimSpace(strings.TrimPrefix(line, headerPrefix)), Header: true}
	}
	title, detail, _ := strings.Cut(line, "\t")
	return Entry{Title: strings.TrimSpace(title), Detail: strings.TrimSpace(detail)}
}

// LoadAll loads paths concurrently and concatenates their entries in argument order.
// Concurrency is limited to runtime.NumCPU().
func LoadAll(ctx context.Context, paths []string) ([]Entry, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	results := make([][]Entry, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			entries, err := Load(path)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	entries := make([]Entry, 0, total)
	for _, r := range results {
		entries = append(entries, r...)
	}
	return entries, nil
}
