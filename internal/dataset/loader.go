package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a header-first CSV stream and returns the normalized dataset.
// Rows are normalized individually and kept in file order. Short or long
// rows are tolerated; fully blank rows are skipped. Only a missing or
// unreadable header is an error — the caller is expected to degrade to an
// empty dataset rather than abort startup.
func Load(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	schema := DefaultSchema()
	var data Dataset
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Tolerant parse: a malformed row degrades to a skipped row,
			// never a failed load.
			continue
		}
		if isBlankRow(row) {
			continue
		}
		raw := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				raw[col] = strings.TrimSpace(row[i])
			}
		}
		data = append(data, NormalizeRow(schema, raw))
	}
	return data, nil
}

// LoadFile loads the campaign CSV from disk.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(bufio.NewReader(f))
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// stripBOM removes a UTF-8 byte order mark so the first header name matches
// cleanly. Excel exports routinely carry one.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && len(head) == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
