// Package sink writes accumulated records as delimited output files.
//
// Writes are wholesale: each run truncates and rewrites the target file, so
// re-running a partition against unchanged data is byte-identical. The sink
// is append-once, not transactional; a crash mid-run leaves earlier files
// intact and the in-progress file incomplete or absent.
package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
)

// ErrNoRecords is returned when zero records were accumulated: no column
// order can be inferred from an empty batch, so the caller must decide to
// skip the write rather than crash on a missing first element.
var ErrNoRecords = errors.New("no records to write")

// Record is one output row. Header returns the column names in
// serialization order; Row the matching values.
type Record interface {
	Header() []string
	Row() []string
}

// WriteCSV writes records to path with a header row derived from the first
// record. The file is created or truncated.
func WriteCSV(path string, records []Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(records[0].Header()); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return fmt.Errorf("write row %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
