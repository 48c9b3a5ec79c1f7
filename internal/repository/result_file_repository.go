package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/pitchdeck-analyzer/internal/model"
)

const resultTimestampLayout = "20060102_150405"

// ResultFileRepository keeps one JSON file per evaluation in a directory.
type ResultFileRepository struct {
	dir string
	now func() time.Time
}

func NewResultFileRepository(dir string) *ResultFileRepository {
	return &ResultFileRepository{dir: dir, now: time.Now}
}

// Save writes the record as <YYYYMMDD_HHMMSS>_<document stem>.json and
// returns the file path.
func (r *ResultFileRepository) Save(record *model.ResultRecord) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	ts := record.EvaluatedAt
	if ts.IsZero() {
		ts = r.now()
	}
	stem := strings.TrimSuffix(record.DocumentName, filepath.Ext(record.DocumentName))
	if stem == "" {
		stem = "resultado"
	}
	path := filepath.Join(r.dir, fmt.Sprintf("%s_%s.json", ts.Format(resultTimestampLayout), stem))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(record); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}

func (r *ResultFileRepository) Load(path string) (*model.ResultRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var record model.ResultRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &record, nil
}
