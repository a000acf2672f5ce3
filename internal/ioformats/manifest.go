
package ioformats

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"pageseo/internal/models"
)

// ReadJobs reads rewrite jobs from a CSV (header row naming the columns),
// NDJSON or YAML (a list of jobs) manifest, chosen by extension.
// Unknown extensions try CSV first, then NDJSON.
func ReadJobs(path string) ([]models.Job, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return readCSV(path)
	case ".ndjson", ".jsonl":
		return readNDJSON(path)
	case ".yaml", ".yml":
		return readYAML(path)
	default:
		if jobs, err := readCSV(path); err == nil && len(jobs) > 0 {
			return jobs, nil
		}
		return readNDJSON(path)
	}
}

func readCSV(path string) ([]models.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["source"]; !ok {
		return nil, errors.New("csv must contain a 'source' header column")
	}
	get := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []models.Job
	for _, row := range rows[1:] {
		j := models.Job{
			Source:      get(row, "source"),
			Output:      get(row, "output"),
			Title:       get(row, "title"),
			Description: get(row, "description"),
			Canonical:   get(row, "canonical"),
		}
		if j.Source != "" {
			out = append(out, j)
		}
	}
	return out, nil
}

func readNDJSON(path string) ([]models.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []models.Job
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var j models.Job
		if err := json.Unmarshal([]byte(line), &j); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		if j.Source == "" {
			return nil, fmt.Errorf("%s:%d: missing source", path, n)
		}
		out = append(out, j)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no jobs found in ndjson")
	}
	return out, nil
}

func readYAML(path string) ([]models.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []models.Job
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, j := range out {
		if j.Source == "" {
			return nil, fmt.Errorf("%s: job %d: missing source", path, i+1)
		}
	}
	return out, nil
}

// WriteNDJSON writes results as NDJSON to w.
func WriteNDJSON(w io.Writer, results []models.Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
