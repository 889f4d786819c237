package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

type resultLine struct {
	Original  string `json:"original"`
	Formatted string `json:"formatted"`
	Success   bool   `json:"success"`
}

func TestResultsLogAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	log := NewResultsLog(path)

	first := resultLine{Original: "ibid., 45", Formatted: "Ibid., 45.", Success: true}
	second := resultLine{Original: "gibberish", Success: false}
	if err := log.Append(first, second); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := log.Append(resultLine{Original: "third", Success: true}); err != nil {
		t.Fatalf("Append() second call error = %v", err)
	}

	records, err := ReadResults(path)
	if err != nil {
		t.Fatalf("ReadResults() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ReadResults() returned %d records, want 3", len(records))
	}

	var got resultLine
	if err := json.Unmarshal(records[0], &got); err != nil {
		t.Fatalf("parsing first record: %v", err)
	}
	if got != first {
		t.Errorf("first record = %+v, want %+v", got, first)
	}
}

func TestResultsLogAppendNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	if err := NewResultsLog(path).Append(); err != nil {
		t.Fatalf("Append() with no records error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Append() with no records created the file")
	}
}

func TestReadResultsMissingFile(t *testing.T) {
	records, err := ReadResults(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("ReadResults() error = %v", err)
	}
	if records != nil {
		t.Errorf("ReadResults() = %v, want nil for missing file", records)
	}
}

func TestReadResultsSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	content := `{"original":"a"}` + "\n\n" + `{"original":"b"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	records, err := ReadResults(path)
	if err != nil {
		t.Fatalf("ReadResults() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("ReadResults() returned %d records, want 2", len(records))
	}
}

func TestReadResultsRejectsCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := ReadResults(path); err == nil {
		t.Error("ReadResults() accepted corrupt JSONL")
	}
}
