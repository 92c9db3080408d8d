package units

import "strconv"

// DefaultPrecision is the number of decimals String prints.
const DefaultPrecision = 2

// String renders "<value><SUFFIX>" at DefaultPrecision, e.g. "1.50MB".
func (q Quantity[U]) String() string {
	return q.Format(DefaultPrecision)
}

// Format renders "<value><SUFFIX>" with the given number of decimals.
// A negative precision uses the shortest exact representation.
func (q Quantity[U]) Format(precision int) string {
	return strconv.FormatFloat(q.AsF64(), 'f', precision, 64) + q.Suffix()
}

// Human renders the quantity in the largest unit that keeps the value >= 1,
// independent of U (e.g. "1.5 MB").
func (q Quantity[U]) Human() string {
	return q.Size().HumanReadable()
}

// Raw renders the underlying byte count, ignoring U.
func (q Quantity[U]) Raw() string {
	return strconv.FormatUint(q.bytes, 10)
}
