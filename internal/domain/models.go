package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TextContent is receipt text that has already been through OCR. It behaves
// as plain text everywhere; the type only records provenance so the pipeline
// never tries to re-detect the input kind.
type TextContent string

func (t TextContent) String() string {
	return string(t)
}

// Merchant is the seller block of a receipt. Only the name is guaranteed.
type Merchant struct {
	Name    string  `json:"name"`
	VatID   *string `json:"vatId"`
	Address *string `json:"address"`
}

// LineItem is a single purchased item. Order within Receipt.LineItems matches
// the order on the source receipt.
type LineItem struct {
	Text  string          `json:"text"`
	Qty   decimal.Decimal `json:"qty"`
	Price decimal.Decimal `json:"price"`
	Sku   *string         `json:"sku"`
}

// Receipt is the extracted record. It is built exactly once, by the
// normalizer, after full validation; callers treat it as read-only.
type Receipt struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	Currency    Currency        `json:"currency"`
	OrderRef    *string         `json:"orderRef"`
	Date        time.Time       `json:"date"`
	Merchant    Merchant        `json:"merchant"`
	LineItems   []LineItem      `json:"lineItems"`
}

// ToMap projects the receipt into a plain nested map with the field names of
// the extraction schema. It is a pure projection of an already validated
// record; there is no separate validation path for the map form. Absent
// optional fields are present with a nil value, never omitted.
func (r *Receipt) ToMap() map[string]any {
	items := make([]map[string]any, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, map[string]any{
			"text":  li.Text,
			"qty":   li.Qty.InexactFloat64(),
			"price": li.Price.InexactFloat64(),
			"sku":   optString(li.Sku),
		})
	}

	var date any
	if !r.Date.IsZero() {
		date = r.Date.Format("2006-01-02")
	}

	return map[string]any{
		"totalAmount": r.TotalAmount.InexactFloat64(),
		"taxAmount":   r.TaxAmount.InexactFloat64(),
		"currency":    string(r.Currency),
		"orderRef":    optString(r.OrderRef),
		"date":        date,
		"merchant": map[string]any{
			"name":    r.Merchant.Name,
			"vatId":   optString(r.Merchant.VatID),
			"address": optString(r.Merchant.Address),
		},
		"lineItems": items,
	}
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
