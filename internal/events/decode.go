// Package events decodes streams of test-execution events and replays them
// into a recent.Data aggregate.
package events

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/recenttests/internal/model"
	"github.com/AndreyAkinshin/recenttests/internal/schema"
)

// Format is an event stream encoding.
type Format string

const (
	// FormatNDJSON is one JSON event per line.
	FormatNDJSON Format = "ndjson"
	// FormatYAML is a multi-document YAML stream or a YAML list of events.
	FormatYAML Format = "yaml"
)

// maxLineSize bounds a single NDJSON line.
const maxLineSize = 1024 * 1024

// ErrUnknownFormat is returned for files whose extension names no event format.
var ErrUnknownFormat = errors.New("unknown event file format")

// FormatForPath detects the stream format from a file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatNDJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// LineError describes an event that was skipped while decoding.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result holds the decoded events and the ones that were skipped.
type Result struct {
	Events  []model.Event
	Skipped []LineError
}

// Decode reads events from r. Malformed or invalid events are reported in
// Result.Skipped; only read failures (and YAML syntax errors, after which the
// stream cannot be resynchronized) are returned as errors.
func Decode(r io.Reader, format Format) (*Result, error) {
	switch format {
	case FormatNDJSON:
		return decodeNDJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DecodeFile decodes an event file, picking the format from its extension.
func DecodeFile(path string) (*Result, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	defer f.Close()

	res, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func decodeNDJSON(r io.Reader) (*Result, error) {
	res := &Result{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		ev, err := decodeEvent([]byte(raw))
		if err != nil {
			res.Skipped = append(res.Skipped, LineError{Line: line, Err: err})
			continue
		}
		res.Events = append(res.Events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return res, nil
}

func decodeYAML(r io.Reader) (*Result, error) {
	res := &Result{}
	dec := yaml.NewDecoder(r)

	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML events: %w", err)
		}
		if len(doc.Content) == 0 {
			continue
		}

		node := doc.Content[0]
		items := []*yaml.Node{node}
		if node.Kind == yaml.SequenceNode {
			items = node.Content
		}

		for _, item := range items {
			ev, err := decodeYAMLEvent(item)
			if err != nil {
				res.Skipped = append(res.Skipped, LineError{Line: item.Line, Err: err})
				continue
			}
			res.Events = append(res.Events, ev)
		}
	}

	return res, nil
}

// decodeYAMLEvent converts a YAML node to JSON so both formats share one
// schema check and one decoding path.
func decodeYAMLEvent(node *yaml.Node) (model.Event, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return model.Event{}, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return model.Event{}, fmt.Errorf("event is not representable as JSON: %w", err)
	}
	return decodeEvent(data)
}

func decodeEvent(data []byte) (model.Event, error) {
	if err := schema.ValidateEvent(data); err != nil {
		return model.Event{}, err
	}

	var ev model.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return model.Event{}, fmt.Errorf("invalid event: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}
