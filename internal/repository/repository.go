// Package repository loads the product, client, and order records from
// a tabular source into memory and answers queries over the snapshot.
// The snapshot is built once; only the contact-person update writes
// anything back to the store.
package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avolkov/orderdesk/internal/catalog"
	"github.com/avolkov/orderdesk/internal/config"
	"github.com/avolkov/orderdesk/internal/tabular"
)

// Fixed column layout of the three sheets (zero-based, header in row 0).
const (
	productColCode  = 0
	productColName  = 1
	productColUnit  = 2
	productColPrice = 3

	clientColCode    = 0
	clientColOrg     = 1
	clientColAddress = 2
	clientColContact = 3

	orderColProduct  = 1
	orderColClient   = 2
	orderColQuantity = 4
	orderColDate     = 5
)

// Date layouts accepted in order cells. Covers ISO text cells plus the
// default renderings excelize produces for date-formatted cells.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// Repository holds the in-memory snapshot. It is not safe for
// concurrent use; the tool is single-threaded by design.
type Repository struct {
	src      tabular.Source
	sheets   config.SheetNames
	products []catalog.Product
	clients  []*catalog.Client
	snapshot uuid.UUID
	log      *zap.Logger
}

// Load reads the three record sheets and builds the snapshot. Either
// every sheet loads cleanly or Load fails: a missing sheet yields a
// *MissingSheetError, a cell that cannot be coerced yields a
// *CellError, and nothing is retained in either case.
func Load(src tabular.Source, sheets config.SheetNames, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{
		src:      src,
		sheets:   sheets,
		snapshot: uuid.New(),
		log:      logger,
	}

	// One open/read/close of the store covers all three sheets.
	raw, err := src.ReadSheets(sheets.Products, sheets.Clients, sheets.Orders)
	if err != nil {
		var ns *tabular.NoSheetError
		if errors.As(err, &ns) {
			return nil, &MissingSheetError{Sheet: ns.Sheet}
		}
		return nil, fmt.Errorf("load store: %w", err)
	}

	if err := r.loadProducts(&sheet{name: sheets.Products, rows: raw[sheets.Products]}); err != nil {
		return nil, err
	}
	if err := r.loadClients(&sheet{name: sheets.Clients, rows: raw[sheets.Clients]}); err != nil {
		return nil, err
	}
	dropped, err := r.loadOrders(&sheet{name: sheets.Orders, rows: raw[sheets.Orders]})
	if err != nil {
		return nil, err
	}

	orders := 0
	for _, c := range r.clients {
		orders += len(c.Orders)
	}
	r.log.Info("store loaded",
		zap.String("snapshot_id", r.snapshot.String()),
		zap.Int("products", len(r.products)),
		zap.Int("clients", len(r.clients)),
		zap.Int("orders", orders),
	)
	if dropped > 0 {
		// Orders without a matching client are dropped, not rejected.
		r.log.Debug("dropped orders with unknown client code", zap.Int("count", dropped))
	}
	return r, nil
}

// SnapshotID identifies this load for log correlation.
func (r *Repository) SnapshotID() uuid.UUID {
	return r.snapshot
}

func (r *Repository) loadProducts(sh *sheet) error {
	for i := range sh.dataRows() {
		code, err := sh.intAt(i, productColCode)
		if err != nil {
			return err
		}
		price, err := sh.decimalAt(i, productColPrice)
		if err != nil {
			return err
		}
		r.products = append(r.products, catalog.Product{
			Code:  code,
			Name:  sh.textAt(i, productColName),
			Unit:  sh.textAt(i, productColUnit),
			Price: price,
		})
	}
	return nil
}

func (r *Repository) loadClients(sh *sheet) error {
	for i := range sh.dataRows() {
		code, err := sh.intAt(i, clientColCode)
		if err != nil {
			return err
		}
		r.clients = append(r.clients, &catalog.Client{
			Code:          code,
			Organization:  sh.textAt(i, clientColOrg),
			Address:       sh.textAt(i, clientColAddress),
			ContactPerson: sh.textAt(i, clientColContact),
		})
	}
	return nil
}

// loadOrders appends each order to its owning client, in sheet order.
// Returns the number of orders dropped for lack of a matching client.
func (r *Repository) loadOrders(sh *sheet) (int, error) {
	dropped := 0
	for i := range sh.dataRows() {
		product, err := sh.intAt(i, orderColProduct)
		if err != nil {
			return 0, err
		}
		clientCode, err := sh.intAt(i, orderColClient)
		if err != nil {
			return 0, err
		}
		quantity, err := sh.intAt(i, orderColQuantity)
		if err != nil {
			return 0, err
		}
		date, err := sh.dateAt(i, orderColDate)
		if err != nil {
			return 0, err
		}

		client := r.clientByCode(clientCode)
		if client == nil {
			dropped++
			continue
		}
		client.Orders = append(client.Orders, catalog.Order{
			ProductCode: product,
			ClientCode:  clientCode,
			Quantity:    quantity,
			Date:        date,
		})
	}
	return dropped, nil
}

// clientByCode returns the first client with the given code, or nil.
// Duplicate codes are not validated; first match wins.
func (r *Repository) clientByCode(code int) *catalog.Client {
	for _, c := range r.clients {
		if c.Code == code {
			return c
		}
	}
	return nil
}

// sheet wraps raw rows with typed per-column accessors. Data row
// indices are zero-based and exclude the header row; blank rows are
// filtered out up front so trailing padding in a workbook is harmless.
type sheet struct {
	name     string
	rows     [][]string
	filtered []int // store row index per data row, built lazily
}

// dataRows returns the store row index of every non-blank row after
// the header, in order. Accessors take positions into this slice.
func (s *sheet) dataRows() []int {
	if s.filtered == nil {
		s.filtered = []int{}
		for i := 1; i < len(s.rows); i++ {
			if !rowBlank(s.rows[i]) {
				s.filtered = append(s.filtered, i)
			}
		}
	}
	return s.filtered
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// raw returns a data cell's trimmed text; ok is false when the row is
// too short to have the cell.
func (s *sheet) raw(dataRow, col int) (string, bool) {
	row := s.rows[s.dataRows()[dataRow]]
	if col >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[col]), true
}

// cellErr builds a CellError with one-based store coordinates.
func (s *sheet) cellErr(dataRow, col int, msg string, err error) *CellError {
	return &CellError{
		Sheet:   s.name,
		Row:     s.dataRows()[dataRow] + 1,
		Col:     col + 1,
		Message: msg,
		Err:     err,
	}
}

// textAt returns a text cell. A missing cell is an empty string, not
// an error; only typed coercions can fail.
func (s *sheet) textAt(dataRow, col int) string {
	v, _ := s.raw(dataRow, col)
	return v
}

func (s *sheet) intAt(dataRow, col int) (int, error) {
	raw, ok := s.raw(dataRow, col)
	if !ok || raw == "" {
		return 0, s.cellErr(dataRow, col, "expected an integer, cell is empty", nil)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, s.cellErr(dataRow, col, fmt.Sprintf("expected an integer, got %q", raw), err)
	}
	return v, nil
}

func (s *sheet) decimalAt(dataRow, col int) (decimal.Decimal, error) {
	raw, ok := s.raw(dataRow, col)
	if !ok || raw == "" {
		return decimal.Decimal{}, s.cellErr(dataRow, col, "expected a number, cell is empty", nil)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, s.cellErr(dataRow, col, fmt.Sprintf("expected a number, got %q", raw), err)
	}
	return v, nil
}

func (s *sheet) dateAt(dataRow, col int) (time.Time, error) {
	raw, ok := s.raw(dataRow, col)
	if !ok || raw == "" {
		return time.Time{}, s.cellErr(dataRow, col, "expected a date, cell is empty", nil)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, s.cellErr(dataRow, col, fmt.Sprintf("expected a date, got %q", raw), nil)
}
