package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
)

// ExportCSV serializes records into a complete CSV artifact: header row from
// the first record's keys, one line per record, values flattened per the
// export rules. The artifact is built in memory so a failure never delivers
// a partial file.
func ExportCSV(records []ExportRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, records); err != nil {
		slog.Error("csv export failed", "error", err)
		return nil, fmt.Errorf("csv export failed: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(buf *bytes.Buffer, records []ExportRecord) error {
	w := csv.NewWriter(buf)
	if len(records) == 0 {
		w.Flush()
		return w.Error()
	}

	keys := make([]string, len(records[0]))
	for i, f := range records[0] {
		keys[i] = f.Key
	}
	if err := w.Write(keys); err != nil {
		return err
	}

	for _, rec := range records {
		byKey := make(map[string]any, len(rec))
		for _, f := range rec {
			byKey[f.Key] = f.Value
		}
		row := make([]string, len(keys))
		for i, key := range keys {
			row[i] = flattenValue(byKey[key])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
