package scanner

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"receiptscan/internal/domain"
)

// dateFormats are the accepted date representations, tried in order. ISO
// first, then the formats models commonly fall back to.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2 January 2006",
}

// Normalize coerces the decoded model output into a validated Receipt.
// Construction is all or nothing: any coercion failure fails the whole call
// and no partially populated record is ever returned. Financial fields are
// never defaulted on bad input.
func Normalize(data map[string]any) (*domain.Receipt, error) {
	total, err := coerceAmount("totalAmount", data["totalAmount"])
	if err != nil {
		return nil, err
	}
	tax, err := coerceAmount("taxAmount", data["taxAmount"])
	if err != nil {
		return nil, err
	}
	if total.IsNegative() {
		return nil, &domain.InvalidFieldTypeError{Field: "totalAmount", Value: data["totalAmount"]}
	}
	if tax.IsNegative() {
		return nil, &domain.InvalidFieldTypeError{Field: "taxAmount", Value: data["taxAmount"]}
	}

	orderRef, err := coerceOptionalString("orderRef", data["orderRef"])
	if err != nil {
		return nil, err
	}

	date, err := coerceDate(data["date"])
	if err != nil {
		return nil, err
	}

	merchant, err := coerceMerchant(data["merchant"])
	if err != nil {
		return nil, err
	}

	items, err := coerceLineItems(data["lineItems"])
	if err != nil {
		return nil, err
	}

	currency := domain.CurrencyUnknown
	if raw, ok := data["currency"]; ok && raw != nil {
		currency = domain.ParseCurrency(fmt.Sprintf("%v", raw))
	}

	return &domain.Receipt{
		TotalAmount: total,
		TaxAmount:   tax,
		Currency:    currency,
		OrderRef:    orderRef,
		Date:        date,
		Merchant:    *merchant,
		LineItems:   items,
	}, nil
}

func coerceMerchant(v any) (*domain.Merchant, error) {
	if v == nil {
		return nil, &domain.MissingRequiredFieldError{Field: "merchant.name"}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &domain.InvalidFieldTypeError{Field: "merchant", Value: v}
	}

	name, ok := m["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, &domain.MissingRequiredFieldError{Field: "merchant.name"}
	}

	vatID, err := coerceOptionalString("merchant.vatId", m["vatId"])
	if err != nil {
		return nil, err
	}
	address, err := coerceOptionalString("merchant.address", m["address"])
	if err != nil {
		return nil, err
	}

	return &domain.Merchant{Name: name, VatID: vatID, Address: address}, nil
}

func coerceLineItems(v any) ([]domain.LineItem, error) {
	var entries []any
	switch raw := v.(type) {
	case nil:
		return []domain.LineItem{}, nil
	case []any:
		entries = raw
	case []map[string]any: // map projection shape
		for _, m := range raw {
			entries = append(entries, m)
		}
	default:
		return nil, &domain.InvalidFieldTypeError{Field: "lineItems", Value: v}
	}

	items := make([]domain.LineItem, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, &domain.InvalidFieldTypeError{Field: fmt.Sprintf("lineItems[%d]", i), Value: entry}
		}

		text, err := coerceOptionalString(fmt.Sprintf("lineItems[%d].text", i), m["text"])
		if err != nil {
			return nil, err
		}
		qty, err := coerceAmount(fmt.Sprintf("lineItems[%d].qty", i), m["qty"])
		if err != nil {
			return nil, err
		}
		price, err := coerceAmount(fmt.Sprintf("lineItems[%d].price", i), m["price"])
		if err != nil {
			return nil, err
		}
		sku, err := coerceOptionalString(fmt.Sprintf("lineItems[%d].sku", i), m["sku"])
		if err != nil {
			return nil, err
		}

		item := domain.LineItem{Qty: qty, Price: price, Sku: sku}
		if text != nil {
			item.Text = *text
		}
		items = append(items, item)
	}
	return items, nil
}

// coerceAmount accepts a native number or a numeric string, possibly carrying
// a currency code and thousand separators ("NOK 568,00"). Absent values are
// zero; present but non-numeric values are an error, never zero.
func coerceAmount(field string, v any) (decimal.Decimal, error) {
	switch value := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return value, nil
	case float64:
		return decimal.NewFromFloat(value), nil
	case int:
		return decimal.NewFromInt(int64(value)), nil
	case int64:
		return decimal.NewFromInt(value), nil
	case json.Number:
		d, err := decimal.NewFromString(value.String())
		if err != nil {
			return decimal.Zero, &domain.InvalidFieldTypeError{Field: field, Value: v}
		}
		return d, nil
	case string:
		d, err := decimalFromString(value)
		if err != nil {
			return decimal.Zero, &domain.InvalidFieldTypeError{Field: field, Value: v}
		}
		return d, nil
	default:
		return decimal.Zero, &domain.InvalidFieldTypeError{Field: field, Value: v}
	}
}

func decimalFromString(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("no digits in %q", s)
	}

	lastComma := strings.LastIndexByte(cleaned, ',')
	lastDot := strings.LastIndexByte(cleaned, '.')
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// comma is the decimal mark, dots are thousand separators
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = keepLastSeparator(cleaned, ',')
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
			cleaned = keepLastSeparator(cleaned, '.')
		}
	case lastComma >= 0:
		// a trailing group of 1-2 digits reads as a decimal mark, anything
		// else as thousand separators
		if strings.Count(cleaned, ",") == 1 && len(cleaned)-lastComma-1 <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case strings.Count(cleaned, ".") > 1:
		cleaned = keepLastSeparator(cleaned, '.')
	}

	return decimal.NewFromString(cleaned)
}

// keepLastSeparator drops every occurrence of sep except the last one.
func keepLastSeparator(s string, sep byte) string {
	last := strings.LastIndexByte(s, sep)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == sep && i != last {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func coerceDate(v any) (time.Time, error) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return value, nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateFormats {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t, nil
			}
		}
		return time.Time{}, &domain.InvalidDateError{Value: value}
	default:
		return time.Time{}, &domain.InvalidDateError{Value: fmt.Sprintf("%v", v)}
	}
}

func coerceOptionalString(field string, v any) (*string, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(value) == "" {
			return nil, nil
		}
		return &value, nil
	case json.Number:
		s := value.String()
		return &s, nil
	case float64:
		s := strings.TrimSuffix(fmt.Sprintf("%v", value), ".0")
		return &s, nil
	default:
		return nil, &domain.InvalidFieldTypeError{Field: field, Value: v}
	}
}
