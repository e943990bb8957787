package scanner_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptscan/internal/domain"
	"receiptscan/internal/scanner"
)

func TestExtract_PureJSON(t *testing.T) {
	data, err := scanner.Extract(`{"totalAmount": 568.00, "currency": "NOK"}`)

	require.NoError(t, err)
	assert.Equal(t, 568.00, data["totalAmount"])
	assert.Equal(t, "NOK", data["currency"])
}

func TestExtract_MarkdownFencedJSON(t *testing.T) {
	raw := "```json\n{\"currency\": \"NOK\"}\n```"
	data, err := scanner.Extract(raw)

	require.NoError(t, err)
	assert.Equal(t, "NOK", data["currency"])
}

func TestExtract_JSONEmbeddedInProse(t *testing.T) {
	raw := `Sure! Here is the extracted receipt data:

{"merchant": {"name": "Minde Pizzeria"}, "note": "includes } and { in text"}

Let me know if you need anything else.`
	data, err := scanner.Extract(raw)

	require.NoError(t, err)
	merchant := data["merchant"].(map[string]any)
	assert.Equal(t, "Minde Pizzeria", merchant["name"])
	assert.Equal(t, "includes } and { in text", data["note"])
}

func TestExtract_SkipsNonJSONBraces(t *testing.T) {
	raw := `The format is {field: value} style. Result: {"qty": 2}`
	data, err := scanner.Extract(raw)

	require.NoError(t, err)
	assert.Equal(t, 2.0, data["qty"])
}

func TestExtract_NestedArrays(t *testing.T) {
	raw := `{"lineItems": [{"text": "Pizza"}, {"text": "Cola"}]}`
	data, err := scanner.Extract(raw)

	require.NoError(t, err)
	items := data["lineItems"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Pizza", items[0].(map[string]any)["text"])
}

func TestExtract_NoJSON(t *testing.T) {
	_, err := scanner.Extract("I could not find any receipt data in the text.")

	assert.ErrorIs(t, err, domain.ErrUnparsableResponse)
}

func TestExtract_UnbalancedJSON(t *testing.T) {
	_, err := scanner.Extract(`{"totalAmount": 568.00`)

	assert.ErrorIs(t, err, domain.ErrUnparsableResponse)
}

func TestExtract_RoundTrip(t *testing.T) {
	original := map[string]any{
		"orderRef": "61e4fb2646c424c5cbc9bc88",
		"merchant": map[string]any{"name": `Bergen "Beste" Pizzeria`},
		"lineItems": []any{
			map[string]any{"text": "Pizza {large}", "qty": 1.0},
		},
	}
	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	raw := "Here you go:\n\n" + string(encoded) + "\n\nHope that helps!"
	decoded, err := scanner.Extract(raw)

	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
