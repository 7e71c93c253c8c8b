// Package ledger records charges.
package ledger

// Record stores a charge.
//
// Args:
//
//	amount: Amount in cents.
func Record(amount int) {}
