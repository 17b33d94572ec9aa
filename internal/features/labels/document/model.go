// Package document turns a print job into a typed page tree and renders it for a target.
package document

import (
	"fmt"
	"html/template"

	"label-printer/internal/features/labels/templates"
)

// Kind tags a node so renderers can dispatch on it.
type Kind string

const (
	KindHeader   Kind = "header"
	KindBarcode  Kind = "barcode"
	KindQR       Kind = "qr"
	KindAddress  Kind = "address"
	KindCOD      Kind = "cod"
	KindProducts Kind = "products"
	KindFooter   Kind = "footer"
)

// Node is one block of a page.
type Node interface {
	Kind() Kind
}

// Document is a rendered-agnostic print job: one page per label, in job order.
type Document struct {
	JobID   string
	Title   string
	Carrier string
	Accent  string
	Format  templates.PageFormat
	Page    templates.PageBox
	Pages   []Page
	Missing []string
	FontURL string
}

// Page holds the nodes of one label.
type Page struct {
	ID     string
	Number int
	Nodes  []Node
}

// Header carries the carrier branding.
type Header struct {
	Title       string
	Logo        string
	SortingCode string
	Pickup      bool
}

func (Header) Kind() Kind { return KindHeader }

// Barcode holds the vector barcode or the reason it is missing.
type Barcode struct {
	SlotID    string
	Value     string
	SVG       template.HTML
	Error     string
	Surrogate bool
}

func (Barcode) Kind() Kind { return KindBarcode }

// QRCode holds an inlined QR image or the reason it is missing.
type QRCode struct {
	SlotID string
	Value  string
	Src    template.URL
	Error  string
	SizePx int
}

func (QRCode) Kind() Kind { return KindQR }

// Role distinguishes the two address blocks.
type Role string

const (
	RoleSender    Role = "sender"
	RoleRecipient Role = "recipient"
)

// AddressBlock is a sender or recipient block.
type AddressBlock struct {
	SlotID  string
	Role    Role
	Title   string
	Name    string
	Phone   string
	Address string
}

func (AddressBlock) Kind() Kind { return KindAddress }

// CODBlock shows the amount the courier collects.
type CODBlock struct {
	SlotID string
	Amount string
}

func (CODBlock) Kind() Kind { return KindCOD }

// ProductTable lists order items, collapsing rows beyond the layout's limit.
type ProductTable struct {
	SlotID    string
	Rows      []ProductRow
	EmptyText string
	Overflow  int
}

func (ProductTable) Kind() Kind { return KindProducts }

// OverflowText describes the rows that did not fit.
func (t ProductTable) OverflowText() string {
	return fmt.Sprintf("+%d more", t.Overflow)
}

// ProductRow is one line item.
type ProductRow struct {
	Name     string
	Quantity int
	Amount   string
}

// Footer carries order references and dates.
type Footer struct {
	OrderNumber   string
	ShippingDate  string
	EstimatedDate string
	Number        int
	Total         int
}

func (Footer) Kind() Kind { return KindFooter }
