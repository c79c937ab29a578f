package tablestate

import (
	"testing"
	"time"

	"github.com/restroworks/restropos-api/internal/domain/enum"
)

var now = time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC)

func minutesAgo(m int) *time.Time {
	t := now.Add(-time.Duration(m) * time.Minute)
	return &t
}

func TestDeriveStatusCodes(t *testing.T) {
	cases := []struct {
		code int
		want enum.TableStatus
	}{
		{0, enum.TableStatusAvailable},
		{1, enum.TableStatusRunning},
		{2, enum.TableStatusPrinted},
		{3, enum.TableStatusPaid},
		{4, enum.TableStatusRunningKOT},
		{5, enum.TableStatusReserved},
	}
	for _, tc := range cases {
		got := Derive(Snapshot{StatusCode: tc.code}, now, DefaultPrintedTimeout)
		if got != tc.want {
			t.Errorf("code %d -> %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestDeriveUnknownCodeFailsOpen(t *testing.T) {
	for _, code := range []int{-1, 6, 7, 99, 1000} {
		got := Derive(Snapshot{StatusCode: code}, now, DefaultPrintedTimeout)
		if got != enum.TableStatusAvailable {
			t.Errorf("code %d -> %v, want available", code, got)
		}
	}
}

func TestDeriveSettledWinsOverEverything(t *testing.T) {
	snap := Snapshot{
		StatusCode:    2,
		IsBilled:      1,
		IsSettled:     1,
		BillPrintedAt: minutesAgo(30),
	}
	if got := Derive(snap, now, DefaultPrintedTimeout); got != enum.TableStatusAvailable {
		t.Errorf("settled table -> %v, want available", got)
	}
}

func TestDeriveBilledOverridesStatusCode(t *testing.T) {
	// The billed flag is truth even when the raw code still says running.
	snap := Snapshot{StatusCode: 1, IsBilled: 1}
	if got := Derive(snap, now, DefaultPrintedTimeout); got != enum.TableStatusPrinted {
		t.Errorf("billed table -> %v, want printed", got)
	}
}

func TestDerivePrintedTimeout(t *testing.T) {
	cases := []struct {
		name      string
		printedAt *time.Time
		want      enum.TableStatus
	}{
		{"9 minutes ago stays printed", minutesAgo(9), enum.TableStatusPrinted},
		{"exactly 10 minutes flips", minutesAgo(10), enum.TableStatusRunningKOT},
		{"11 minutes ago flips", minutesAgo(11), enum.TableStatusRunningKOT},
		{"no print timestamp stays printed", nil, enum.TableStatusPrinted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := Snapshot{IsBilled: 1, BillPrintedAt: tc.printedAt}
			if got := Derive(snap, now, DefaultPrintedTimeout); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDerivePrintedTimeoutViaStatusCode(t *testing.T) {
	// Raw code 2 without the billed flag still ages into running-kot.
	snap := Snapshot{StatusCode: 2, BillPrintedAt: minutesAgo(15)}
	if got := Derive(snap, now, DefaultPrintedTimeout); got != enum.TableStatusRunningKOT {
		t.Errorf("got %v, want running-kot", got)
	}
}

func TestDeriveCustomTimeout(t *testing.T) {
	snap := Snapshot{IsBilled: 1, BillPrintedAt: minutesAgo(20)}

	if got := Derive(snap, now, 30*time.Minute); got != enum.TableStatusPrinted {
		t.Errorf("20min under a 30min timeout -> %v, want printed", got)
	}
	if got := Derive(snap, now, 15*time.Minute); got != enum.TableStatusRunningKOT {
		t.Errorf("20min under a 15min timeout -> %v, want running-kot", got)
	}
	// Zero falls back to the default rather than flagging instantly.
	if got := Derive(Snapshot{IsBilled: 1, BillPrintedAt: minutesAgo(5)}, now, 0); got != enum.TableStatusPrinted {
		t.Errorf("zero timeout -> %v, want printed", got)
	}
}

func TestDeriveWithoutBill(t *testing.T) {
	if got := DeriveWithoutBill(4); got != enum.TableStatusRunningKOT {
		t.Errorf("code 4 -> %v, want running-kot", got)
	}
	if got := DeriveWithoutBill(42); got != enum.TableStatusAvailable {
		t.Errorf("unknown code -> %v, want available", got)
	}
}
