package bankcsv

// Columns of a bank statement export.
const (
	BookingDate int = iota
	Counterpart
	Purpose
	Amount
)
