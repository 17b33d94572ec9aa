package document

import (
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"
)

// ContentTypeHTML is the media type of every renderer output.
const ContentTypeHTML = "text/html; charset=utf-8"

// Renderer writes a document for one output target.
type Renderer interface {
	Render(w io.Writer, doc *Document) error
	ContentType() string
}

const nodeTemplates = `
{{define "header"}}<header class="lbl-header"><div class="logo">{{.Logo}}</div><div class="title">{{.Title}}</div>{{if .Pickup}}<div class="pickup">PICKUP</div>{{end}}{{if .SortingCode}}<div class="zone">{{.SortingCode}}</div>{{end}}</header>{{end}}
{{define "barcode"}}<div class="lbl-barcode" id="{{.SlotID}}">{{if .Error}}<div class="symbol-error">{{.Error}}</div>{{else}}{{.SVG}}{{end}}{{if .Surrogate}}<div class="badge surrogate">เลขพัสดุชั่วคราว</div>{{end}}</div>{{end}}
{{define "qr"}}<div class="lbl-qr" id="{{.SlotID}}">{{if .Error}}<div class="symbol-error">{{.Error}}</div>{{else}}<img src="{{.Src}}" width="{{.SizePx}}" height="{{.SizePx}}" alt="{{.Value}}">{{end}}</div>{{end}}
{{define "address"}}<section class="lbl-address {{.Role}}" id="{{.SlotID}}"><h3>{{.Title}}</h3><div class="name">{{.Name}}</div><div class="phone">โทร {{.Phone}}</div><div class="address">{{.Address}}</div></section>{{end}}
{{define "cod"}}<div class="lbl-cod" id="{{.SlotID}}"><span>เก็บเงินปลายทาง (COD)</span><strong>{{.Amount}}</strong></div>{{end}}
{{define "products"}}<table class="lbl-products" id="{{.SlotID}}"><thead><tr><th>สินค้า</th><th>จำนวน</th><th>ราคา</th></tr></thead><tbody>{{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Amount}}</td></tr>{{else}}{{if not .Overflow}}<tr><td colspan="3" class="empty">{{.EmptyText}}</td></tr>{{end}}{{end}}{{if .Overflow}}<tr><td colspan="3" class="more">{{.OverflowText}}</td></tr>{{end}}</tbody></table>{{end}}
{{define "footer"}}<footer class="lbl-footer"><span>ออเดอร์ {{.OrderNumber}}</span><span>วันที่ส่ง {{.ShippingDate}}</span><span>คาดว่าจะถึง {{.EstimatedDate}}</span><span class="page-no">{{.Number}}/{{.Total}}</span></footer>{{end}}
{{define "node"}}{{if eq .Kind "header"}}{{template "header" .}}{{else if eq .Kind "barcode"}}{{template "barcode" .}}{{else if eq .Kind "qr"}}{{template "qr" .}}{{else if eq .Kind "address"}}{{template "address" .}}{{else if eq .Kind "cod"}}{{template "cod" .}}{{else if eq .Kind "products"}}{{template "products" .}}{{else if eq .Kind "footer"}}{{template "footer" .}}{{end}}{{end}}
{{define "pages"}}{{range .}}<article class="page" id="{{.ID}}">{{range .Nodes}}{{template "node" .}}{{end}}</article>{{end}}{{end}}
`

const printLayout = `{{define "print"}}<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>{{.Doc.Title}}</title>{{if .Doc.FontURL}}
<link rel="stylesheet" href="{{.Doc.FontURL}}">{{end}}
<style>{{.CSS}}</style>
</head>
<body class="print">{{template "pages" .Doc.Pages}}{{if .AutoPrint}}
<script>window.addEventListener("load", function () { window.focus(); window.print(); });</script>{{end}}
</body>
</html>
{{end}}`

const previewLayout = `{{define "preview"}}<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>{{.Doc.Title}}</title>{{if .Doc.FontURL}}
<link rel="stylesheet" href="{{.Doc.FontURL}}">{{end}}
<style>{{.CSS}}</style>
</head>
<body class="preview">
<div class="toolbar"><strong>{{.Doc.Title}}</strong> <span>{{.Doc.Format}}</span>{{if .Doc.Missing}}<div class="missing">ไม่พบออเดอร์: {{join .Doc.Missing ", "}}</div>{{end}}</div>
<div class="grid">{{template "pages" .Doc.Pages}}</div>
</body>
</html>
{{end}}`

const baseCSS = `
* { box-sizing: border-box; }
body { margin: 0; font-family: "Sarabun", "Noto Sans Thai", sans-serif; font-size: 11px; color: #000; }
.page { position: relative; overflow: hidden; padding: 3mm; border: 1px solid #000; display: flex; flex-direction: column; gap: 2mm; }
.lbl-header { display: flex; align-items: center; justify-content: space-between; border-bottom: 2px solid var(--accent); padding-bottom: 1mm; }
.lbl-header .logo { font-weight: 700; font-size: 14px; }
.lbl-header .pickup { border: 1px solid #000; padding: 0 2mm; font-weight: 700; }
.lbl-header .zone { font-size: 18px; font-weight: 700; border: 2px solid #000; padding: 0 2mm; }
.lbl-barcode { text-align: center; }
.lbl-barcode svg { max-width: 100%; height: auto; }
.lbl-qr { text-align: right; }
.badge.surrogate { display: inline-block; margin-top: 1mm; padding: 0 2mm; border: 1px dashed #000; font-weight: 700; }
.symbol-error { border: 1px dashed #c00; color: #c00; padding: 2mm; text-align: center; }
.lbl-address h3 { margin: 0; font-size: 10px; text-transform: uppercase; }
.lbl-address .name { font-weight: 700; font-size: 13px; }
.lbl-cod { display: flex; justify-content: space-between; border: 2px solid #000; padding: 1mm 2mm; font-size: 14px; }
.lbl-products { width: 100%; border-collapse: collapse; }
.lbl-products th, .lbl-products td { border-bottom: 1px solid #ccc; padding: 0.5mm 1mm; text-align: left; }
.lbl-products .empty, .lbl-products .more { text-align: center; color: #555; }
.lbl-footer { margin-top: auto; display: flex; justify-content: space-between; font-size: 9px; }
`

var (
	layouts = template.Must(template.New("labels").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(nodeTemplates + printLayout + previewLayout))

	accentPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)
)

const defaultAccent = "#333333"

type view struct {
	Doc       *Document
	CSS       template.CSS
	AutoPrint bool
}

func accent(doc *Document) string {
	if accentPattern.MatchString(doc.Accent) {
		return doc.Accent
	}
	return defaultAccent
}

// PrintRenderer lays out one label per physical page.
type PrintRenderer struct {
	// AutoPrint opens the print dialog once every page resource has loaded.
	AutoPrint bool
}

// ContentType implements Renderer.
func (PrintRenderer) ContentType() string {
	return ContentTypeHTML
}

// Render implements Renderer.
func (r PrintRenderer) Render(w io.Writer, doc *Document) error {
	var css strings.Builder
	if size := doc.Page.CSSSize(); size != "" {
		fmt.Fprintf(&css, "@page { size: %s; margin: 0; }\n", size)
		fmt.Fprintf(&css, ".page { width: %gmm; height: %gmm; }\n", doc.Page.WidthMM, doc.Page.HeightMM)
	} else {
		css.WriteString("@page { margin: 0; }\n")
		fmt.Fprintf(&css, ".page { width: %gmm; }\n", doc.Page.WidthMM)
	}
	css.WriteString(".page { page-break-after: always; break-after: page; }\n")
	css.WriteString(".page:last-child { page-break-after: auto; break-after: auto; }\n")
	fmt.Fprintf(&css, ":root { --accent: %s; }\n", accent(doc))
	css.WriteString(baseCSS)

	if err := layouts.ExecuteTemplate(w, "print", view{Doc: doc, CSS: template.CSS(css.String()), AutoPrint: r.AutoPrint}); err != nil {
		return fmt.Errorf("failed to render print document: %w", err)
	}
	return nil
}

// PreviewRenderer lays labels out in an on-screen grid without page breaks.
type PreviewRenderer struct{}

// ContentType implements Renderer.
func (PreviewRenderer) ContentType() string {
	return ContentTypeHTML
}

// Render implements Renderer.
func (PreviewRenderer) Render(w io.Writer, doc *Document) error {
	var css strings.Builder
	fmt.Fprintf(&css, ":root { --accent: %s; }\n", accent(doc))
	css.WriteString("body.preview { background: #eee; padding: 16px; }\n")
	css.WriteString(".toolbar { margin-bottom: 12px; font-size: 14px; }\n.toolbar .missing { color: #c00; }\n")
	fmt.Fprintf(&css, ".grid { display: grid; grid-template-columns: repeat(auto-fill, %gmm); gap: 8mm; }\n", doc.Page.WidthMM)
	if doc.Page.Auto() {
		css.WriteString(".page { background: #fff; }\n")
	} else {
		fmt.Fprintf(&css, ".page { background: #fff; min-height: %gmm; }\n", doc.Page.HeightMM)
	}
	css.WriteString(baseCSS)

	if err := layouts.ExecuteTemplate(w, "preview", view{Doc: doc, CSS: template.CSS(css.String())}); err != nil {
		return fmt.Errorf("failed to render preview document: %w", err)
	}
	return nil
}
