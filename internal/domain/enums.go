package domain

import "strings"

// Currency is an ISO-4217 code recognized by the normalizer. Codes the model
// invents are mapped to CurrencyUnknown instead of a default; a wrong
// currency on a financial record is worse than an explicit unknown.
type Currency string

const CurrencyUnknown Currency = "unknown"

var knownCurrencies = map[string]Currency{}

func init() {
	for _, code := range []string{
		"NOK", "SEK", "DKK", "ISK", "EUR", "USD", "GBP", "CHF", "PLN", "CZK",
		"HUF", "RON", "TRY", "CAD", "AUD", "NZD", "JPY", "CNY", "KRW", "INR",
		"SGD", "HKD", "THB", "IDR", "MYR", "PHP", "VND", "AED", "ILS", "ZAR",
		"BRL", "MXN",
	} {
		knownCurrencies[code] = Currency(code)
	}
}

// ParseCurrency matches a raw code case-insensitively against the known set.
func ParseCurrency(raw string) Currency {
	if c, ok := knownCurrencies[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return c
	}
	return CurrencyUnknown
}

// ModelName identifies a language model variant.
type ModelName string

const (
	ModelTurbo         ModelName = "gpt-3.5-turbo"
	ModelTurbo16K      ModelName = "gpt-3.5-turbo-16k"
	ModelTurboInstruct ModelName = "gpt-3.5-turbo-instruct"
	ModelGPT4          ModelName = "gpt-4"
	ModelGPT4Turbo     ModelName = "gpt-4-turbo"
	ModelGPT41106      ModelName = "gpt-4-1106-preview"
	ModelGPT4o         ModelName = "gpt-4o"
)

// ModelStyle is the invocation shape a model expects.
type ModelStyle int

const (
	// ChatStyle wraps the prompt as a role-tagged message list.
	ChatStyle ModelStyle = iota
	// CompletionStyle sends the prompt as a single flat string.
	CompletionStyle
)

// modelStyles is the closed classification table. Dispatch is keyed off this
// table, never off substring checks on the model name; adding a model is one
// entry here.
var modelStyles = map[ModelName]ModelStyle{
	ModelTurbo:         ChatStyle,
	ModelTurbo16K:      ChatStyle,
	ModelTurboInstruct: CompletionStyle,
	ModelGPT4:          ChatStyle,
	ModelGPT4Turbo:     ChatStyle,
	ModelGPT41106:      ChatStyle,
	ModelGPT4o:         ChatStyle,
}

// Style resolves the invocation shape for the model. The second return is
// false for identifiers outside the table; callers must treat that as an
// error rather than guess a style.
func (m ModelName) Style() (ModelStyle, bool) {
	style, ok := modelStyles[m]
	return style, ok
}
