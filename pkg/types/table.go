package types

import "strconv"

// imageColumn is the provenance column prepended when rows are tagged
// with the image they were measured on.
const imageColumn = "Image"

// TableData is an in-memory tabular buffer accumulated across macro
// calls under one user-chosen name. Rows appended with an image id are
// tagged with it in a leading provenance column; Property records the
// grouping hint captured when the table was created.
type TableData struct {
	Name     string
	Columns  []string
	Rows     [][]string
	Property string
}

// NewTableData creates a buffer from an initial batch of rows,
// tagging each row with imageID when given. Returns ErrNoInputRows for
// an empty batch.
func NewTableData(name string, columns []string, rows [][]string, imageID *int64, property string) (*TableData, error) {
	t := &TableData{Name: name, Property: property}
	if err := t.AppendRows(columns, rows, imageID); err != nil {
		return nil, err
	}
	return t, nil
}

// AppendRows merges a batch of rows into the buffer with the same
// provenance tagging as the initial batch. The batch must carry the
// same number of data columns as the buffer. Returns ErrNoInputRows
// for an empty batch and ErrColumnMismatch on incompatible shape.
func (t *TableData) AppendRows(columns []string, rows [][]string, imageID *int64) error {
	if len(rows) == 0 {
		return ErrNoInputRows
	}
	tagged := imageID != nil
	if tagged {
		columns = append([]string{imageColumn}, columns...)
	}
	if t.Columns == nil {
		t.Columns = columns
	} else if len(columns) != len(t.Columns) {
		return ErrColumnMismatch
	}
	for _, row := range rows {
		if len(row)+boolToInt(tagged) != len(t.Columns) {
			return ErrColumnMismatch
		}
		if tagged {
			row = append([]string{formatID(*imageID)}, row...)
		}
		t.Rows = append(t.Rows, row)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
