package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hurou927/spam-graph/internal/config"
	"github.com/hurou927/spam-graph/internal/table"
)

// LoadStats counts what a loader read and what it had to skip.
type LoadStats struct {
	Rows    int
	Skipped int
}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string, cols config.Columns, logger *zap.Logger) (*table.Table, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	t, stats, err := LoadCSV(f, cols, logger.With(zap.String("file", path)))
	if err != nil {
		return nil, stats, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, stats, nil
}

// LoadCSV reads a comment dataset with a header row. Columns are found by
// header name. Records that cannot be parsed, are too short, or carry an
// unknown label are skipped and logged.
func LoadCSV(r io.Reader, cols config.Columns, logger *zap.Logger) (*table.Table, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var stats LoadStats

	head, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}
	idx, err := headerIndexes(head, cols)
	if err != nil {
		return nil, stats, err
	}
	need := 0
	for _, i := range idx {
		need = max(need, i+1)
	}

	var rows [][]table.Cell
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Warn("skipping unparseable record", zap.Int("line", perr.Line), zap.Error(err))
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("reading records: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) < need {
			logger.Warn("skipping short record",
				zap.Int("line", line), zap.Int("fields", len(record)), zap.Int("want", need))
			stats.Skipped++
			continue
		}

		label, err := parseLabel(record[idx[table.ColLabel]])
		if err != nil {
			logger.Warn("skipping record with bad label", zap.Int("line", line), zap.Error(err))
			stats.Skipped++
			continue
		}

		rows = append(rows, []table.Cell{
			table.Text(record[idx[table.ColUser]]),
			table.Text(record[idx[table.ColContent]]),
			table.Text(record[idx[table.ColVideo]]),
			table.Flag(label),
		})
		stats.Rows++
	}

	if stats.Skipped > 0 {
		logger.Warn("some records were skipped", zap.Int("loaded", stats.Rows), zap.Int("skipped", stats.Skipped))
	}

	t, err := table.New(rows)
	if err != nil {
		return nil, stats, err
	}
	return t, stats, nil
}

// headerIndexes maps each table column position to its index in head.
func headerIndexes(head []string, cols config.Columns) ([table.Width]int, error) {
	pos := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var idx [table.Width]int
	var missing []string
	for col, name := range columnNames(cols) {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("header is missing columns %v (have %v)", missing, head)
	}
	return idx, nil
}

// columnNames lists the configured names in table column order.
func columnNames(cols config.Columns) [table.Width]string {
	var names [table.Width]string
	names[table.ColUser] = cols.User
	names[table.ColContent] = cols.Content
	names[table.ColVideo] = cols.Video
	names[table.ColLabel] = cols.Label
	return names
}
