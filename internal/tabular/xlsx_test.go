package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkbook(t *testing.T) *Workbook {
	t.Helper()
	return NewWorkbook(filepath.Join(t.TempDir(), "orders.xlsx"))
}

func TestWorkbookRoundTrip(t *testing.T) {
	w := newTestWorkbook(t)

	rows := [][]string{
		{"Code", "Name", "Unit", "Price"},
		{"1", "Widget", "pcs", "9.99"},
	}
	require.NoError(t, w.WriteSheet("Products", rows))

	got, err := w.ReadSheet("Products")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestWorkbookMissingSheet(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Products", [][]string{{"Code"}}))

	_, err := w.ReadSheet("Clients")
	require.Error(t, err)
	assert.True(t, IsNoSheet(err))
}

func TestWorkbookReadSheets(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Products", [][]string{{"Code"}, {"1"}}))
	require.NoError(t, w.WriteSheet("Clients", [][]string{{"Code"}, {"10"}}))

	got, err := w.ReadSheets("Products", "Clients")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [][]string{{"Code"}, {"1"}}, got["Products"])
	assert.Equal(t, [][]string{{"Code"}, {"10"}}, got["Clients"])
}

func TestWorkbookReadSheetsMissingSheet(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Products", [][]string{{"Code"}}))

	_, err := w.ReadSheets("Products", "Orders")
	require.Error(t, err)
	assert.True(t, IsNoSheet(err))
	assert.Contains(t, err.Error(), "Orders")
}

func TestWorkbookWriteCell(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Clients", [][]string{
		{"Code", "Organization", "Address", "Contact"},
		{"10", "Acme", "12 Main St", "J. Smith"},
	}))

	require.NoError(t, w.WriteCell("Clients", 1, 3, "New Person"))

	got, err := w.ReadSheet("Clients")
	require.NoError(t, err)
	assert.Equal(t, "New Person", got[1][3])
	assert.Equal(t, "Acme", got[1][1])
}

func TestWorkbookWriteCellMissingSheet(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Products", [][]string{{"Code"}}))

	err := w.WriteCell("Clients", 0, 0, "x")
	require.Error(t, err)
	assert.True(t, IsNoSheet(err))
}

func TestWorkbookMultipleSheets(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Products", [][]string{{"Code"}, {"1"}}))
	require.NoError(t, w.WriteSheet("Clients", [][]string{{"Code"}, {"10"}}))

	products, err := w.ReadSheet("Products")
	require.NoError(t, err)
	clients, err := w.ReadSheet("Clients")
	require.NoError(t, err)
	assert.Equal(t, "1", products[1][0])
	assert.Equal(t, "10", clients[1][0])
}

func TestWorkbookWriteSheetShrinksOnlySheet(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Products", [][]string{
		{"Code"},
		{"1"},
		{"2"},
		{"3"},
	}))

	// Replacing the workbook's only sheet with fewer rows must not
	// leave the old tail behind.
	require.NoError(t, w.WriteSheet("Products", [][]string{
		{"Code"},
		{"9"},
	}))

	got, err := w.ReadSheet("Products")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Code"}, {"9"}}, got)

	// No working sheets linger after the replace.
	_, err = w.ReadSheet("__orderdesk_scratch")
	require.Error(t, err)
	assert.True(t, IsNoSheet(err))
}

func TestWorkbookReadMissingFile(t *testing.T) {
	w := NewWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	_, err := w.ReadSheet("Products")
	require.Error(t, err)
	assert.False(t, IsNoSheet(err))
}

func TestWorkbookNoRetainedHandle(t *testing.T) {
	w := newTestWorkbook(t)
	require.NoError(t, w.WriteSheet("Products", [][]string{{"Code"}, {"1"}}))

	// A read after the file is rewritten sees the new content: nothing
	// is cached between calls.
	require.NoError(t, w.WriteSheet("Products", [][]string{{"Code"}, {"2"}}))

	got, err := w.ReadSheet("Products")
	require.NoError(t, err)
	assert.Equal(t, "2", got[1][0])
}
