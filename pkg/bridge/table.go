package bridge

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/lumigraph/omebridge/pkg/types"
)

// defaultDelimiter is used when a table file delimiter is unspecified
// or not exactly one character.
const defaultDelimiter = '\t'

// timestampLayout prefixes persisted table names so repeated saves do
// not collide on the remote side. Sortable, second precision.
const timestampLayout = "2006-01-02_15-04-05"

// AddToTable merges a batch of rows into the named table, creating it
// on first use. Rows are tagged with imageID when given; property is
// the grouping hint captured at creation. Returns ErrNoInputRows for
// an empty batch.
func (b *Bridge) AddToTable(name string, columns []string, rows [][]string, imageID *int64, property string) error {
	table, ok := b.tables[name]
	if !ok {
		table, err := types.NewTableData(name, columns, rows, imageID, property)
		if err != nil {
			return fmt.Errorf("add rows to table %q: %w", name, err)
		}
		b.tables[name] = table
		return nil
	}
	if err := table.AppendRows(columns, rows, imageID); err != nil {
		return fmt.Errorf("add rows to table %q: %w", name, err)
	}
	return nil
}

// SaveTable persists the named table onto a repository object, renaming
// it with a timestamp prefix first. The table stays registered and can
// keep accumulating. A missing table is fatal for the call: EmptyTable.
func (b *Bridge) SaveTable(ctx context.Context, name, rawType string, id int64) error {
	obj, err := b.repositoryObject(ctx, rawType, id)
	if err != nil {
		return err
	}
	table, ok := b.tables[name]
	if !ok {
		return fmt.Errorf("save table %q: %w", name, types.ErrEmptyTable)
	}
	base := name
	if base == "" {
		base = table.Name
	}
	table.Name = time.Now().Format(timestampLayout) + "_" + base
	if _, err := b.client.AddTable(ctx, obj.Addr(), table); err != nil {
		return fmt.Errorf("save table %q to %s: %w", name, obj.Addr(), err)
	}
	return nil
}

// SaveTableAsFile writes the named table as delimited text. The
// delimiter defaults to a tab unless exactly one character is given.
func (b *Bridge) SaveTableAsFile(name, path, delimiter string) error {
	table, ok := b.tables[name]
	if !ok {
		return fmt.Errorf("save table file: %w: %q", types.ErrUnknownTable, name)
	}
	sep := defaultDelimiter
	if runes := []rune(delimiter); len(runes) == 1 {
		sep = runes[0]
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = sep
	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("write table file: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("write table file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write table file: %w", err)
	}
	return nil
}

// ClearTable removes the named table from the registry. Clearing an
// absent name is not an error.
func (b *Bridge) ClearTable(name string) {
	delete(b.tables, name)
}

// TableRowCount reports the number of accumulated rows, or -1 when the
// table does not exist.
func (b *Bridge) TableRowCount(name string) int {
	table, ok := b.tables[name]
	if !ok {
		return -1
	}
	return len(table.Rows)
}
