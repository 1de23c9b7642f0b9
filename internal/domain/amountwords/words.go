package amountwords

import "strings"

var (
	units = [...]string{
		"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE",
	}
	teens = [...]string{
		"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE",
		"QUINCE", "DIECISEIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE",
	}
	tens = [...]string{
		"", "", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA",
	}
	hundreds = [...]string{
		"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS",
		"QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS",
	}
)

const (
	wordZero     = "CERO"
	wordOne      = "UNO"
	wordOneShort = "UN"
	wordHundred  = "CIEN"
	wordTwentyOn = "VEINTI"
	wordAnd      = "Y"
	wordThousand = "MIL"
	wordMillion  = "MILLON"
	wordMillions = "MILLONES"

	// MaxIntegerPart is the largest integer part the converter can spell.
	MaxIntegerPart int64 = 999_999_999
)

// SegmentWords returns the words for n in [1, 999]. Zero and out-of-range
// values yield an empty string; callers decide what an empty segment means.
func SegmentWords(n int) string {
	return strings.Join(segmentTokens(n), " ")
}

func segmentTokens(n int) []string {
	if n <= 0 || n > 999 {
		return nil
	}

	tokens := make([]string, 0, 4)
	c, r := n/100, n%100

	switch {
	case c == 1 && r == 0:
		tokens = append(tokens, wordHundred)
	case c > 0:
		tokens = append(tokens, hundreds[c])
	}

	switch {
	case r >= 30:
		tokens = append(tokens, tens[r/10])
		if u := r % 10; u != 0 {
			tokens = append(tokens, wordAnd, units[u])
		}
	case r > 20:
		tokens = append(tokens, wordTwentyOn+units[r-20])
	case r == 20:
		tokens = append(tokens, tens[2])
	case r >= 10:
		tokens = append(tokens, teens[r-10])
	case r > 0:
		tokens = append(tokens, units[r])
	}

	return tokens
}

// IntegerWords returns the words for a non-negative integer up to
// MaxIntegerPart. Zero is "CERO"; negative or larger values yield "".
func IntegerWords(n int64) string {
	if n == 0 {
		return wordZero
	}
	if n < 0 || n > MaxIntegerPart {
		return ""
	}

	millions := int(n / 1_000_000)
	thousands := int((n % 1_000_000) / 1000)
	rest := int(n % 1000)

	tokens := make([]string, 0, 12)

	switch {
	case millions == 1:
		tokens = append(tokens, wordOneShort, wordMillion)
	case millions > 1:
		tokens = append(tokens, segmentTokens(millions)...)
		tokens = append(tokens, wordMillions)
	}

	// 1000 is "MIL", never "UN MIL"
	switch {
	case thousands == 1:
		tokens = append(tokens, wordThousand)
	case thousands > 1:
		tokens = append(tokens, segmentTokens(thousands)...)
		tokens = append(tokens, wordThousand)
	}

	tokens = append(tokens, segmentTokens(rest)...)

	return strings.Join(tokens, " ")
}
