package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/orderdesk/internal/tabular"
)

// newFixtureStore writes the standard test dataset into a SQLite cell
// store and returns its path.
func newFixtureStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.db")
	s := tabular.NewCellStore(path)

	sheets := map[string][][]string{
		"Products": {
			{"Code", "Name", "Unit", "Price"},
			{"1", "Widget", "pcs", "9.99"},
			{"2", "Gadget", "box", "24.50"},
		},
		"Clients": {
			{"Code", "Organization", "Address", "Contact"},
			{"10", "Acme", "12 Main St", "J. Smith"},
			{"20", "Globex", "50 Side St", "H. Simpson"},
		},
		"Orders": {
			{"ID", "ProductCode", "ClientCode", "Manager", "Quantity", "Date"},
			{"1", "1", "10", "mgr", "5", "2024-03-01"},
			{"2", "1", "20", "mgr", "2", "2024-03-15"},
			{"3", "2", "10", "mgr", "1", "2024-04-02"},
		},
	}
	for name, rows := range sheets {
		require.NoError(t, s.WriteSheet(name, rows))
	}
	return path
}
