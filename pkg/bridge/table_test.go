package bridge

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumigraph/omebridge/pkg/types"
)

func TestAddToTableAccumulates(t *testing.T) {
	b := New(&fakeClient{})
	cols := []string{"Area"}

	require.NoError(t, b.AddToTable("results", cols, [][]string{{"1"}, {"2"}}, nil, ""))
	require.NoError(t, b.AddToTable("results", cols, [][]string{{"3"}}, nil, ""))
	assert.Equal(t, 3, b.TableRowCount("results"))

	// Clearing then appending starts a fresh table.
	b.ClearTable("results")
	assert.Equal(t, -1, b.TableRowCount("results"))
	require.NoError(t, b.AddToTable("results", cols, [][]string{{"4"}}, nil, ""))
	assert.Equal(t, 1, b.TableRowCount("results"))
}

func TestAddToTableNoRows(t *testing.T) {
	b := New(&fakeClient{})
	err := b.AddToTable("results", []string{"Area"}, nil, nil, "")
	assert.ErrorIs(t, err, types.ErrNoInputRows)
	assert.Equal(t, -1, b.TableRowCount("results"), "failed create must not register")
}

func TestClearTableIdempotent(t *testing.T) {
	b := New(&fakeClient{})
	b.ClearTable("absent")
	b.ClearTable("absent")
}

func TestSaveTableRenamesWithTimestamp(t *testing.T) {
	ctx := context.Background()
	var saved *types.TableData
	client := &fakeClient{
		addTableFn: func(ctx context.Context, target types.TypedID, table *types.TableData) (int64, error) {
			saved = table
			return 10, nil
		},
	}
	b := New(client)

	require.NoError(t, b.AddToTable("results", []string{"Area"}, [][]string{{"1"}}, nil, ""))
	require.NoError(t, b.SaveTable(ctx, "results", "dataset", 3))

	require.NotNil(t, saved)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}_results$`), saved.Name)

	// The table stays registered after a save.
	assert.Equal(t, 1, b.TableRowCount("results"))
}

func TestSaveTableMissingIsEmptyTable(t *testing.T) {
	b := New(&fakeClient{})
	err := b.SaveTable(context.Background(), "absent", "dataset", 3)
	assert.ErrorIs(t, err, types.ErrEmptyTable)
}

func TestSaveTableAsFile(t *testing.T) {
	b := New(&fakeClient{})
	imageID := int64(5)
	require.NoError(t, b.AddToTable("results", []string{"Area"}, [][]string{{"1"}, {"2"}}, &imageID, ""))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, b.SaveTableAsFile("results", path, ";"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Image;Area\n5;1\n5;2\n", string(data))
}

func TestSaveTableAsFileDefaultDelimiter(t *testing.T) {
	b := New(&fakeClient{})
	require.NoError(t, b.AddToTable("results", []string{"A", "B"}, [][]string{{"1", "2"}}, nil, ""))

	path := filepath.Join(t.TempDir(), "out.tsv")
	// A multi-character delimiter falls back to the tab default.
	require.NoError(t, b.SaveTableAsFile("results", path, "||"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\tB\n1\t2\n", string(data))
}

func TestSaveTableAsFileUnknownTable(t *testing.T) {
	b := New(&fakeClient{})
	err := b.SaveTableAsFile("absent", filepath.Join(t.TempDir(), "out.csv"), "")
	assert.ErrorIs(t, err, types.ErrUnknownTable)
}
