package model

import "fmt"

// TransportError wraps a network-level failure talking to an external feed.
type TransportError struct {
	Feed string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Feed, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DataFormatError reports a feed response that does not match the
// expected shape (missing column, empty table, non-numeric cell).
type DataFormatError struct {
	Feed   string
	Detail string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%s: bad data: %s", e.Feed, e.Detail)
}

// InsufficientDataError reports fewer aligned observations than the
// estimation needs.
type InsufficientDataError struct {
	Symbol string
	Got    int
	Want   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %d aligned observations, need %d", e.Symbol, e.Got, e.Want)
}

// ArithmeticError reports a zero-valued divisor during estimation.
type ArithmeticError struct {
	Quantity string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("division by zero: %s is 0", e.Quantity)
}
