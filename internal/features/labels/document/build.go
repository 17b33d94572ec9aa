package document

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"label-printer/internal/features/labels/domain"
	"label-printer/internal/features/labels/symbol"
	"label-printer/internal/features/labels/templates"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// EmptyProductsText is shown when an order has no items.
	EmptyProductsText = "ไม่มีรายการสินค้า"

	senderTitle    = "ผู้ส่ง"
	recipientTitle = "ผู้รับ"
	dateLayout     = "02/01/2006"
)

var errNotEncoded = errors.New("not encoded")

// Sender is the return address printed on labels that have a sender block.
type Sender struct {
	Name    string
	Phone   string
	Address string
}

func (s Sender) empty() bool {
	return strings.TrimSpace(s.Name) == "" && strings.TrimSpace(s.Address) == ""
}

// Options controls document construction.
type Options struct {
	Sender   Sender
	Location *time.Location
	// FontURL is linked as a stylesheet when set.
	FontURL string
}

// Build turns job into a document. symbols[i] belongs to job.Labels[i]. Build has no side
// effects, so building the same inputs twice yields equal documents.
func Build(job *domain.Job, symbols []symbol.Symbols, opts Options) *Document {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	printer := message.NewPrinter(language.Thai)
	tpl := job.Template

	doc := &Document{
		JobID:   job.ID,
		Title:   fmt.Sprintf("%s (%d)", tpl.DisplayName, len(job.Labels)),
		Carrier: tpl.Key,
		Accent:  tpl.AccentColor,
		Format:  tpl.Format,
		Page:    tpl.Page,
		Pages:   make([]Page, 0, len(job.Labels)),
		Missing: append([]string{}, job.Missing...),
		FontURL: opts.FontURL,
	}

	for i, label := range job.Labels {
		sym := symbol.Symbols{Value: label.TrackingID, BarcodeErr: errNotEncoded, QREnabled: tpl.ShowsQR()}
		if i < len(symbols) {
			sym = symbols[i]
		}

		b := pageBuilder{
			id:      fmt.Sprintf("label-%d", i+1),
			number:  i + 1,
			total:   len(job.Labels),
			tpl:     tpl,
			label:   label,
			sym:     sym,
			sender:  opts.Sender,
			loc:     loc,
			printer: printer,
		}
		doc.Pages = append(doc.Pages, b.build())
	}

	return doc
}

type pageBuilder struct {
	id      string
	number  int
	total   int
	tpl     templates.Template
	label   domain.Label
	sym     symbol.Symbols
	sender  Sender
	loc     *time.Location
	printer *message.Printer
}

func (b pageBuilder) slot(name string) string {
	return b.id + "-" + name
}

func (b pageBuilder) build() Page {
	page := Page{ID: b.id, Number: b.number}
	for _, section := range b.tpl.Sections {
		if node := b.node(section); node != nil {
			page.Nodes = append(page.Nodes, node)
		}
	}
	return page
}

func (b pageBuilder) node(section templates.Section) Node {
	switch section {
	case templates.SectionHeader:
		return Header{
			Title:       b.tpl.HeaderText,
			Logo:        b.tpl.LogoText,
			SortingCode: b.label.Zone,
			Pickup:      b.tpl.PickupMarker,
		}
	case templates.SectionBarcode:
		return b.barcode()
	case templates.SectionQR:
		return b.qr()
	case templates.SectionSender:
		if b.sender.empty() {
			return nil
		}
		return AddressBlock{
			SlotID:  b.slot("sender"),
			Role:    RoleSender,
			Title:   senderTitle,
			Name:    b.sender.Name,
			Phone:   displayPhone(b.sender.Phone),
			Address: b.sender.Address,
		}
	case templates.SectionRecipient:
		return AddressBlock{
			SlotID:  b.slot("recipient"),
			Role:    RoleRecipient,
			Title:   recipientTitle,
			Name:    b.label.Recipient.Name,
			Phone:   b.label.Recipient.DisplayPhone(),
			Address: b.label.Recipient.AddressLine,
		}
	case templates.SectionCOD:
		if !b.label.IsCOD() {
			return nil
		}
		return CODBlock{SlotID: b.slot("cod"), Amount: b.money(b.label.CODAmount)}
	case templates.SectionProducts:
		return b.products()
	case templates.SectionFooter:
		number := b.label.OrderNumber
		if number == "" {
			number = b.label.OrderID
		}
		return Footer{
			OrderNumber:   number,
			ShippingDate:  b.date(b.label.ShippingDate),
			EstimatedDate: b.date(b.label.EstimatedDeliveryDate),
			Number:        b.number,
			Total:         b.total,
		}
	}
	return nil
}

func (b pageBuilder) barcode() Barcode {
	node := Barcode{
		SlotID:    b.slot("barcode"),
		Value:     b.label.TrackingID,
		Surrogate: b.label.TrackingSurrogate,
	}
	switch {
	case b.sym.BarcodeErr != nil:
		node.Error = symbol.BarcodePlaceholder(b.sym.BarcodeErr)
	case b.sym.BarcodeSVG == "":
		node.Error = symbol.BarcodePlaceholder(errNotEncoded)
	default:
		// Markup is generated by symbol.SVGSurface, which escapes the only text it embeds.
		node.SVG = template.HTML(b.sym.BarcodeSVG)
	}
	return node
}

func (b pageBuilder) qr() Node {
	if !b.tpl.ShowsQR() {
		return nil
	}
	size := b.tpl.QRSize
	if size <= 0 {
		size = symbol.DefaultQRSize
	}
	node := QRCode{SlotID: b.slot("qr"), Value: b.label.TrackingID, SizePx: size}
	switch {
	case b.sym.QRErr != nil:
		node.Error = symbol.QRPlaceholder(b.sym.QRErr)
	case b.sym.QR.Empty():
		node.Error = symbol.QRPlaceholder(errNotEncoded)
	default:
		node.Src = template.URL(b.sym.QR.DataURI())
	}
	return node
}

func (b pageBuilder) products() ProductTable {
	table := ProductTable{SlotID: b.slot("products"), EmptyText: EmptyProductsText}
	items := b.label.Items
	if limit := b.tpl.MaxProductRows; limit > 0 && len(items) > limit {
		// The "+N more" row takes the last slot; a single-row table shows only that row.
		visible := limit - 1
		table.Overflow = len(items) - visible
		items = items[:visible]
	}
	for _, item := range items {
		table.Rows = append(table.Rows, ProductRow{
			Name:     item.Name,
			Quantity: item.Quantity,
			Amount:   b.money(item.Subtotal()),
		})
	}
	return table
}

func (b pageBuilder) money(d decimal.Decimal) string {
	return b.printer.Sprintf("฿%.2f", d.Round(2).InexactFloat64())
}

func (b pageBuilder) date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(b.loc).Format(dateLayout)
}

func displayPhone(phone string) string {
	if phone = strings.TrimSpace(phone); phone != "" {
		return phone
	}
	return domain.NoPhone
}
