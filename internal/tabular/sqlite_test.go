package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCellStore(t *testing.T) *CellStore {
	t.Helper()
	return NewCellStore(filepath.Join(t.TempDir(), "store.db"))
}

func TestCellStoreRoundTrip(t *testing.T) {
	s := newTestCellStore(t)

	rows := [][]string{
		{"Code", "Name"},
		{"1", "Widget"},
		{"2", "Gadget"},
	}
	require.NoError(t, s.WriteSheet("Products", rows))

	got, err := s.ReadSheet("Products")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCellStoreMissingSheet(t *testing.T) {
	s := newTestCellStore(t)
	require.NoError(t, s.WriteSheet("Products", [][]string{{"Code"}}))

	_, err := s.ReadSheet("Clients")
	require.Error(t, err)
	assert.True(t, IsNoSheet(err))
	assert.Contains(t, err.Error(), "Clients")
}

func TestCellStoreReadSheets(t *testing.T) {
	s := newTestCellStore(t)
	require.NoError(t, s.WriteSheet("Products", [][]string{{"Code"}, {"1"}}))
	require.NoError(t, s.WriteSheet("Clients", [][]string{{"Code"}, {"10"}}))

	got, err := s.ReadSheets("Products", "Clients")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, [][]string{{"Code"}, {"1"}}, got["Products"])
	assert.Equal(t, [][]string{{"Code"}, {"10"}}, got["Clients"])
}

func TestCellStoreReadSheetsMissingSheet(t *testing.T) {
	s := newTestCellStore(t)
	require.NoError(t, s.WriteSheet("Products", [][]string{{"Code"}}))

	_, err := s.ReadSheets("Products", "Orders")
	require.Error(t, err)
	assert.True(t, IsNoSheet(err))
	assert.Contains(t, err.Error(), "Orders")
}

func TestCellStoreWriteCell(t *testing.T) {
	s := newTestCellStore(t)
	require.NoError(t, s.WriteSheet("Clients", [][]string{
		{"Code", "Organization", "Address", "Contact"},
		{"10", "Acme", "12 Main St", "J. Smith"},
	}))

	require.NoError(t, s.WriteCell("Clients", 1, 3, "New Person"))

	got, err := s.ReadSheet("Clients")
	require.NoError(t, err)
	assert.Equal(t, "New Person", got[1][3])
	// Neighbouring cells untouched.
	assert.Equal(t, "Acme", got[1][1])
	assert.Equal(t, "12 Main St", got[1][2])
}

func TestCellStoreWriteCellMissingSheet(t *testing.T) {
	s := newTestCellStore(t)
	require.NoError(t, s.WriteSheet("Products", [][]string{{"Code"}}))

	err := s.WriteCell("Clients", 0, 0, "x")
	require.Error(t, err)
	assert.True(t, IsNoSheet(err))
}

func TestCellStoreWriteSheetReplaces(t *testing.T) {
	s := newTestCellStore(t)
	require.NoError(t, s.WriteSheet("Orders", [][]string{
		{"ID"},
		{"1"},
		{"2"},
	}))
	require.NoError(t, s.WriteSheet("Orders", [][]string{
		{"ID"},
		{"9"},
	}))

	got, err := s.ReadSheet("Orders")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID"}, {"9"}}, got)
}

func TestCellStoreRaggedRows(t *testing.T) {
	s := newTestCellStore(t)
	require.NoError(t, s.WriteSheet("Orders", [][]string{
		{"ID", "Product", "Client", "Manager", "Quantity", "Date"},
		{"1", "1", "10"},
	}))

	got, err := s.ReadSheet("Orders")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[1], 3)
}

func TestOpenSelectsBackend(t *testing.T) {
	tests := []struct {
		path string
		want any
	}{
		{"orders.xlsx", &Workbook{}},
		{"orders.XLSM", &Workbook{}},
		{"orders.db", &CellStore{}},
		{"orders.sqlite", &CellStore{}},
		{"orders.sqlite3", &CellStore{}},
	}
	for _, tt := range tests {
		src, err := Open(tt.path)
		require.NoError(t, err, tt.path)
		assert.IsType(t, tt.want, src, tt.path)
	}
}

func TestOpenUnsupportedExtension(t *testing.T) {
	_, err := Open("orders.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store type")
}
