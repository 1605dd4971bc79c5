package market

// MaxFallbackHops bounds how many fallback lookups follow a year-invalid
// entry. The starting entry itself is hop zero.
const MaxFallbackHops = 3

// Resolve returns entry when it is valid in year, otherwise walks its
// fallback chain through full, the unsanitized table. Cycles cost at most
// MaxFallbackHops lookups before ErrFallbackExhausted.
func Resolve(entry Entry, full Table, year int) (Entry, error) {
	hops := MaxFallbackHops
	for !entry.ValidIn(year) {
		if hops == 0 {
			return Entry{}, ErrFallbackExhausted
		}
		hops--
		next, ok := full.Lookup(entry.Fallback)
		if entry.Fallback == "" || !ok {
			return Entry{}, ErrFallbackMissing
		}
		entry = next
	}
	return entry, nil
}
