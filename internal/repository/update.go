package repository

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/avolkov/orderdesk/internal/catalog"
)

// SetContactPerson finds the first client whose organization name
// matches case-insensitively, sets its contact person in memory, and
// immediately writes the change back to the store.
//
// found is false when no organization matches; nothing is mutated and
// nothing is written. A write-back failure is returned with found
// true, and the in-memory mutation is deliberately kept: the snapshot
// and the store disagree until the next load, which is this tool's
// documented behavior.
//
// The write-back re-reads the clients sheet fresh, locates the row by
// client code, and overwrites the contact-person column only. If the
// row has vanished from the store since load, the write-back is a
// silent no-op.
func (r *Repository) SetContactPerson(organization, contact string) (found bool, err error) {
	var target *catalog.Client
	for _, c := range r.clients {
		if foldEqual(c.Organization, organization) {
			target = c
			break
		}
	}
	if target == nil {
		return false, nil
	}

	target.ContactPerson = contact
	r.log.Info("contact person updated",
		zap.String("snapshot_id", r.snapshot.String()),
		zap.Int("client_code", target.Code),
		zap.String("organization", target.Organization),
	)

	if err := r.writeBackContact(target.Code, contact); err != nil {
		return true, err
	}
	return true, nil
}

// writeBackContact scans the clients sheet in the store for the row
// whose first column holds the given client code and overwrites its
// contact-person cell. Rows whose code cell does not parse are
// skipped, matching the permissive load behavior.
func (r *Repository) writeBackContact(code int, contact string) error {
	rows, err := r.src.ReadSheet(r.sheets.Clients)
	if err != nil {
		return fmt.Errorf("write-back: %w", err)
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if clientColCode >= len(row) {
			continue
		}
		rowCode, err := strconv.Atoi(strings.TrimSpace(row[clientColCode]))
		if err != nil || rowCode != code {
			continue
		}
		if err := r.src.WriteCell(r.sheets.Clients, i, clientColContact, contact); err != nil {
			return fmt.Errorf("write-back: %w", err)
		}
		return nil
	}
	// Row gone since load: leave the store untouched.
	r.log.Debug("write-back target row not found, store left unchanged",
		zap.Int("client_code", code))
	return nil
}
