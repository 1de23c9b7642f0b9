// Package amountwords renders monetary amounts as uppercase Spanish legal text,
// the form printed on check requests and memoranda:
//
//	1234.56 dolar -> "MIL DOSCIENTOS TREINTA Y CUATRO CON 56/100 DOLARES"
//
// The integer part is spelled out in words, the cents are written as a
// two-digit fraction of 100, and the currency name comes from an injected
// CurrencyTable. Amounts are rounded to two decimal places before conversion.
//
// Formatter returns typed errors (ErrInvalidAmount, ErrMissingCurrency,
// ErrAmountOutOfRange) so callers can tell a valid zero apart from bad input.
// NumeroALetras collapses those errors to an empty string for templates that
// only need printable text.
//
// Everything in this package is safe for concurrent use.
//
// Known limitations:
//
//   - The integer part must be below 1,000,000,000.
//   - Thousands and millions groups reuse the plain segment words, so 21000 is
//     "VEINTIUNO MIL" rather than the apocopated "VEINTIUN MIL".
package amountwords
