package service

import (
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/pkg/printer"
)

// PrinterService formats KOT slips and customer bills and sends them to the
// kitchen and counter printers.
type PrinterService struct {
	kotPrinter  printer.Printer
	billPrinter printer.Printer
	kotType     string
	billType    string
	paperWidth  int
	upiVPA      string
	logger      zerolog.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	kotPrinter, billPrinter printer.Printer,
	kotType, billType string,
	paperWidth int,
	upiVPA string,
	logger zerolog.Logger,
) *PrinterService {
	return &PrinterService{
		kotPrinter:  kotPrinter,
		billPrinter: billPrinter,
		kotType:     kotType,
		billType:    billType,
		paperWidth:  paperWidth,
		upiVPA:      upiVPA,
		logger:      logger.With().Str("component", "printer").Logger(),
	}
}

// PrinterStatus reports one printer's connection state
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status returns the state of both printers
func (s *PrinterService) Status() map[string]*PrinterStatus {
	return map[string]*PrinterStatus{
		"kot": {
			Configured: s.kotType != "none" && s.kotType != "",
			Connected:  s.kotPrinter.IsConnected(),
			Type:       s.kotType,
		},
		"bill": {
			Configured: s.billType != "none" && s.billType != "",
			Connected:  s.billPrinter.IsConnected(),
			Type:       s.billType,
		},
	}
}

// TestPrint sends a short test page to both printers
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.paperWidth)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("PRINTER TEST").
		SetBold(false).
		Text(time.Now().Format("2006-01-02 15:04:05")).
		FeedLines(3).
		PartialCut()

	if err := s.kotPrinter.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("kitchen printer test failed: %w", err)
	}
	if err := s.billPrinter.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("bill printer test failed: %w", err)
	}
	return nil
}

// PrintKOT sends the given lines to the kitchen. Only the lines passed in
// are printed; callers pass the lines added since the previous save.
func (s *PrinterService) PrintKOT(bill *entity.Bill, items []entity.BillItem, kotNo string, settings *entity.OutletSettings) error {
	if len(items) == 0 {
		return nil
	}

	doc := printer.NewDocument(s.paperWidth)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text("KOT").
		SetFontSize(printer.FontNormal).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("KOT No:", kotNo).
		KeyValue("Order:", fmt.Sprintf("%d", bill.OrderNo)).
		KeyValue("Time:", time.Now().Format("15:04"))
	if bill.Table != nil {
		doc.KeyValue("Table:", bill.Table.Name)
	}
	if bill.WaiterName != "" {
		doc.KeyValue("Waiter:", bill.WaiterName)
	}
	doc.Separator('-')

	// No prices on kitchen slips
	for _, item := range items {
		doc.SetFontSize(printer.FontTall)
		doc.ItemLine(item.Qty, item.ItemName, "")
		doc.SetFontSize(printer.FontNormal)
		if item.Note != "" && (settings == nil || settings.ShowItemNotes) {
			doc.TextF("   >> %s", item.Note)
		}
	}

	doc.Separator('-').
		Beep(2).
		FeedLines(3).
		PartialCut()

	if err := s.kotPrinter.Print(doc.Bytes()); err != nil {
		s.logger.Error().Err(err).Str("kot_no", kotNo).Msg("KOT print failed")
		return fmt.Errorf("failed to print KOT: %w", err)
	}
	return nil
}

// PrintBill formats and prints the customer bill at the counter
func (s *PrinterService) PrintBill(bill *entity.Bill, outlet *entity.Outlet, settings *entity.OutletSettings) error {
	doc := printer.NewDocument(s.paperWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(outlet.Name).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if outlet.Address != nil && *outlet.Address != "" {
		doc.Text(*outlet.Address)
	}
	if outlet.Phone != nil && *outlet.Phone != "" {
		doc.Text(*outlet.Phone)
	}
	if outlet.GSTIN != nil && *outlet.GSTIN != "" {
		doc.TextF("GSTIN: %s", *outlet.GSTIN)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Bill No:", bill.TxnNo).
		KeyValue("Date:", bill.CreatedAt.Format("2006-01-02 15:04"))
	if bill.Table != nil {
		doc.KeyValue("Table:", bill.Table.Name)
	}
	if settings == nil || settings.ShowCustomerInfo {
		if bill.CustomerName != "" {
			doc.KeyValue("Customer:", bill.CustomerName)
		}
		if bill.MobileNo != "" {
			doc.KeyValue("Mobile:", bill.MobileNo)
		}
	}
	doc.Separator('-')

	for _, item := range bill.Items {
		if item.IsReversed == 1 {
			continue
		}
		doc.ItemLine(item.Qty, item.ItemName, fmt.Sprintf("%.2f", billing.Round2(item.Total)))
		if item.Qty != 1 {
			doc.TextF("   @ %.2f each", item.Rate)
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal:", fmt.Sprintf("%.2f", billing.Round2(bill.GrossAmt)))

	if settings == nil || settings.ShowTaxBreakup {
		if bill.CGST > 0 {
			doc.KeyValue("CGST:", fmt.Sprintf("%.2f", billing.Round2(bill.CGST)))
		}
		if bill.SGST > 0 {
			doc.KeyValue("SGST:", fmt.Sprintf("%.2f", billing.Round2(bill.SGST)))
		}
		if bill.IGST > 0 {
			doc.KeyValue("IGST:", fmt.Sprintf("%.2f", billing.Round2(bill.IGST)))
		}
		if bill.CESS > 0 {
			doc.KeyValue("CESS:", fmt.Sprintf("%.2f", billing.Round2(bill.CESS)))
		}
	}
	if bill.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", billing.Round2(bill.Discount)))
	}

	doc.SetBold(true).
		SetFontSize(printer.FontTall).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", billing.Round2(bill.Amount))).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Separator('-')

	if s.upiVPA != "" {
		doc.SetAlign(printer.AlignCenter).
			Text("Scan to pay via UPI").
			QRCode(s.UPIString(bill, outlet.Name), 6).
			SetAlign(printer.AlignLeft)
	}

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you, visit again!").
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	if err := s.billPrinter.Print(doc.Bytes()); err != nil {
		s.logger.Error().Err(err).Str("txn_no", bill.TxnNo).Msg("bill print failed")
		return fmt.Errorf("failed to print bill: %w", err)
	}
	return nil
}

// UPIString builds the upi:// payment URI encoded in the bill QR code
func (s *PrinterService) UPIString(bill *entity.Bill, payeeName string) string {
	q := url.Values{}
	q.Set("pa", s.upiVPA)
	q.Set("pn", payeeName)
	q.Set("am", fmt.Sprintf("%.2f", billing.Round2(bill.Amount)))
	q.Set("cu", "INR")
	q.Set("tn", bill.TxnNo)
	return "upi://pay?" + q.Encode()
}

// HasUPI reports whether a payee address is configured for QR payments
func (s *PrinterService) HasUPI() bool {
	return s.upiVPA != ""
}
