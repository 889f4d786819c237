package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL
// lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ResultsLog is an append-only JSONL file holding one processed
// citation per line. Appends use O_APPEND, so concurrent runs
// interleave whole lines rather than corrupting each other.
type ResultsLog struct {
	path string
}

// NewResultsLog returns a log backed by the given path. The file is
// created on first append.
func NewResultsLog(path string) *ResultsLog {
	return &ResultsLog{path: path}
}

// Path returns the log's file path.
func (l *ResultsLog) Path() string {
	return l.path
}

// Append writes one JSON line per record.
func (l *ResultsLog) Append(records ...any) error {
	if len(records) == 0 {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening results log: %w", err)
	}
	defer f.Close()

	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding result %d: %w", i, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing result %d: %w", i, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// ReadResults reads every line of a results log as raw JSON. A missing
// file reads as empty.
func ReadResults(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening results log: %w", err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return nil, fmt.Errorf("parsing line %d: invalid JSON", lineNum)
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading results log: %w", err)
	}

	return records, nil
}
