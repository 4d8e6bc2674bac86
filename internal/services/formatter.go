package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Ananth-NQI/billpe-backend/internal/models"
)

// DefaultBillTemplate is used when a workspace has not saved its own template
const DefaultBillTemplate = `*{{businessName}}*
{{address}}
📞 {{phone}}

🧾 *Invoice:* {{invoiceNumber}}
📅 {{date}} {{time}}

*Items*
{{items}}

Subtotal: ₹{{subtotal}}
{{#discount}}Discount: -₹{{discount}}
{{/discount}}{{#tax}}Tax: ₹{{tax}}
{{/tax}}*Total: ₹{{total}}*
Payment: {{paymentMethod}}

Thank you for your business! 🙏`

// Template syntax:
//
//	{{name}}                    placeholder
//	{{#discount}}...{{/discount}} kept only when discount > 0
//	{{#tax}}...{{/tax}}           kept only when tax > 0
//	{{items}}                   one line per bill item
//
// Spaces inside the braces are ignored, for markers too. Blocks end at the
// first matching close marker and cannot nest. An open marker without a
// close marker is copied through as text, as is a "{{" followed by another
// "{{" before any "}}".

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentPlaceholder
	segmentBlock
)

type segment struct {
	kind segmentKind
	raw  string // original text, used for literals and unknown placeholders
	name string
	body []segment
}

var conditionalBlocks = map[string]func(*models.BillData) bool{
	"discount": (*models.BillData).HasDiscount,
	"tax":      (*models.BillData).HasTax,
}

func parseTemplate(tmpl string) []segment {
	var segments []segment
	rest := tmpl

	for rest != "" {
		start, end, ok := nextTag(rest)
		if !ok {
			segments = append(segments, segment{kind: segmentLiteral, raw: rest})
			break
		}
		if start > 0 {
			segments = append(segments, segment{kind: segmentLiteral, raw: rest[:start]})
		}

		tag := rest[start:end]
		name := tagName(tag)
		rest = rest[end:]

		if strings.HasPrefix(name, "#") {
			blockName := strings.TrimSpace(strings.TrimPrefix(name, "#"))
			closeStart, closeEnd, found := findClose(rest, blockName)
			if _, known := conditionalBlocks[blockName]; !known || !found {
				segments = append(segments, segment{kind: segmentLiteral, raw: tag})
				continue
			}
			segments = append(segments, segment{
				kind: segmentBlock,
				raw:  tag,
				name: blockName,
				body: parseTemplate(rest[:closeStart]),
			})
			rest = rest[closeEnd:]
			continue
		}

		segments = append(segments, segment{kind: segmentPlaceholder, raw: tag, name: name})
	}

	return segments
}

// nextTag returns the bounds of the first complete {{...}} tag in s. When
// another "{{" appears before the "}}", the earlier one is plain text.
func nextTag(s string) (start, end int, ok bool) {
	open := strings.Index(s, "{{")
	if open < 0 {
		return 0, 0, false
	}
	closeAt := strings.Index(s[open+2:], "}}")
	if closeAt < 0 {
		return 0, 0, false
	}
	end = open + 2 + closeAt + 2
	if inner := strings.LastIndex(s[open+2:end-2], "{{"); inner >= 0 {
		open += 2 + inner
	}
	return open, end, true
}

// findClose locates the {{/blockName}} tag ending a block, ignoring spaces
// inside the braces.
func findClose(s, blockName string) (start, end int, ok bool) {
	offset := 0
	for {
		tagStart, tagEnd, found := nextTag(s[offset:])
		if !found {
			return 0, 0, false
		}
		name := tagName(s[offset+tagStart : offset+tagEnd])
		if strings.HasPrefix(name, "/") && strings.TrimSpace(name[1:]) == blockName {
			return offset + tagStart, offset + tagEnd, true
		}
		offset += tagEnd
	}
}

func tagName(tag string) string {
	return strings.TrimSpace(tag[2 : len(tag)-2])
}

// Formatter renders bill messages from workspace templates
type Formatter struct {
	CurrencySymbol string
}

// NewFormatter creates a formatter; an empty symbol defaults to ₹
func NewFormatter(currencySymbol string) *Formatter {
	if currencySymbol == "" {
		currencySymbol = "₹"
	}
	return &Formatter{CurrencySymbol: currencySymbol}
}

// FormatBill renders tmpl for bill using the default currency symbol
func FormatBill(tmpl string, bill *models.BillData) string {
	return NewFormatter("").Format(tmpl, bill)
}

// Format renders tmpl for bill. It does no I/O and trusts the bill's totals.
func (f *Formatter) Format(tmpl string, bill *models.BillData) string {
	var sb strings.Builder
	f.render(&sb, parseTemplate(tmpl), bill)
	return sb.String()
}

func (f *Formatter) render(sb *strings.Builder, segments []segment, bill *models.BillData) {
	for _, seg := range segments {
		switch seg.kind {
		case segmentLiteral:
			sb.WriteString(seg.raw)
		case segmentPlaceholder:
			if value, ok := f.value(seg.name, bill); ok {
				sb.WriteString(value)
			} else {
				sb.WriteString(seg.raw)
			}
		case segmentBlock:
			if conditionalBlocks[seg.name](bill) {
				f.render(sb, seg.body, bill)
			}
		}
	}
}

func (f *Formatter) value(name string, bill *models.BillData) (string, bool) {
	switch name {
	case "businessName":
		return bill.BusinessName, true
	case "invoiceNumber":
		return bill.InvoiceNumber, true
	case "date":
		return bill.Date, true
	case "time":
		return bill.Time, true
	case "subtotal":
		return bill.Subtotal.StringFixed(2), true
	case "total":
		return bill.Total.StringFixed(2), true
	case "paymentMethod":
		return bill.PaymentMethod, true
	case "phone":
		return bill.BusinessPhone, true
	case "address":
		return bill.BusinessAddress, true
	case "customerName":
		return bill.CustomerName, true
	case "customerPhone":
		return bill.CustomerPhone, true
	case "discount":
		if bill.Discount == nil {
			return "", true
		}
		return bill.Discount.StringFixed(2), true
	case "tax":
		if bill.Tax == nil {
			return "", true
		}
		return bill.Tax.StringFixed(2), true
	case "items":
		return f.formatItems(bill.Items), true
	}
	return "", false
}

// formatItems renders "1. Widget x2 - ₹10.00". Item prices are hundredths.
func (f *Formatter) formatItems(items []models.BillItem) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		amount := hundredths(item.Price * int64(item.Quantity))
		lines = append(lines, fmt.Sprintf("%d. %s x%d - %s%s", i+1, item.Name, item.Quantity, f.CurrencySymbol, amount))
	}
	return strings.Join(lines, "\n")
}

func hundredths(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
