// Package payment contains the payment-request documents of the brokerage
// back office: check requests raised against a customs case (NE) and the
// memoranda that accompany them.
package payment
