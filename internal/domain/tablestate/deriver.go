// Package tablestate derives the display state of a table from the raw status
// flags carried by its latest bill. The state is never stored; it is
// recomputed from server truth on every poll cycle and on demand.
package tablestate

import (
	"time"

	"github.com/restroworks/restropos-api/internal/domain/enum"
)

// DefaultPrintedTimeout is how long a printed bill may sit unpaid before the
// table is flagged as needing attention. Outlets may override it.
const DefaultPrintedTimeout = 10 * time.Minute

// Snapshot is the raw per-table billing state read from storage.
type Snapshot struct {
	StatusCode    int        `json:"status_code"`
	IsBilled      int        `json:"is_billed"`
	IsSettled     int        `json:"is_settled"`
	BillPrintedAt *time.Time `json:"bill_printed_at,omitempty"`
}

// Derive maps a snapshot to a display state.
//
// Precedence: a settled bill resets the table to available no matter what else
// is set; an unsettled billed table shows printed regardless of its raw status
// code; otherwise the raw code is mapped directly, with unknown codes failing
// open to available. A table left printed past the timeout is demoted to
// running-kot so staff notice the unpaid bill.
func Derive(snap Snapshot, now time.Time, printedTimeout time.Duration) enum.TableStatus {
	if printedTimeout <= 0 {
		printedTimeout = DefaultPrintedTimeout
	}

	var state enum.TableStatus
	switch {
	case snap.IsSettled == 1:
		return enum.TableStatusAvailable
	case snap.IsBilled == 1:
		state = enum.TableStatusPrinted
	default:
		state = enum.FromStatusCode(snap.StatusCode)
	}

	if state == enum.TableStatusPrinted && snap.BillPrintedAt != nil {
		if now.Sub(*snap.BillPrintedAt) >= printedTimeout {
			state = enum.TableStatusRunningKOT
		}
	}
	return state
}

// DeriveWithoutBill maps a table's own status code alone. Used when the bill
// snapshot could not be fetched: the billed/settled override is skipped rather
// than letting the failure surface as a wrong or thrown state.
func DeriveWithoutBill(statusCode int) enum.TableStatus {
	return enum.FromStatusCode(statusCode)
}
