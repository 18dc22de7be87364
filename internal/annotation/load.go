package annotation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxDocumentBytes bounds the annotation document read into memory.
const maxDocumentBytes = 256 << 20

// document mirrors the on-disk layout. Frames is a pointer slice so a missing
// key can be told apart from an empty array.
type document struct {
	Frames *[]rawFrame `json:"frames"`
}

type rawFrame struct {
	Timestamp string                  `json:"timestamp"`
	Workers   *map[string]WorkerState `json:"workers"`
}

// Loader fetches and decodes annotation documents.
type Loader struct {
	Client *http.Client
}

// Load reads source (a local path or an http(s) URL) with the default HTTP client.
func Load(ctx context.Context, source string) (*Dataset, error) {
	return (&Loader{}).Load(ctx, source)
}

// Load fetches, parses, and validates the document at source.
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	raw, err := l.fetch(ctx, source)
	if err != nil {
		return nil, &LoadError{Kind: KindFetch, Source: source, Err: err}
	}
	ds, err := Parse(raw)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Source = source
			return nil, loadErr
		}
		return nil, err
	}
	return ds, nil
}

// Parse decodes and validates an annotation document.
func Parse(raw []byte) (*Dataset, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Kind: KindParse, Err: fmt.Errorf("decode json: %w", err)}
	}
	if doc.Frames == nil {
		return nil, &LoadError{Kind: KindValidation, Err: errors.New("missing required frames field")}
	}
	frames := make([]Frame, len(*doc.Frames))
	for i, rf := range *doc.Frames {
		if rf.Workers == nil {
			return nil, &LoadError{Kind: KindValidation, Err: fmt.Errorf("frame %d: missing workers mapping", i)}
		}
		frames[i] = Frame{Timestamp: rf.Timestamp, Workers: *rf.Workers}
	}
	return NewDataset(frames)
}

func validateFrames(frames []Frame) error {
	if len(frames) == 0 {
		return errors.New("frames must be a non-empty array")
	}
	for i, frame := range frames {
		if frame.Workers == nil {
			return fmt.Errorf("frame %d: missing workers mapping", i)
		}
	}
	return nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("no annotation source configured")
	}
	lower := strings.ToLower(source)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return readFile(source)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	body, err := io.ReadAll(io.LimitReader(f, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}
