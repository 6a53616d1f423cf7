package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV renders the table as CSV bytes, header row first. The title is not
// emitted; CSV consumers key on the header.
func CSV(t Table) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("export csv header: %w", err)
	}
	if err := w.WriteAll(t.normalized()); err != nil {
		return nil, fmt.Errorf("export csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
