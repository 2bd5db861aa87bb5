// Package channel owns the per-tuned-frequency state a receiver keeps
// across many groups: four parallel block synchronizers (one per RDS2
// data stream), a confirmed-PI filter that tolerates isolated bit
// errors, a BLER running average, and the station decoder those groups
// feed into.
//
// Grounded on original_source/src/channel.cc/.hh.
package channel

// PIChangeResult reports what CachedPI.Update concluded about the most
// recently observed PI code.
type PIChangeResult int

const (
	// PIChangeSpurious means the new code doesn't yet have two repeats
	// backing it up; the confirmed PI is unchanged.
	PIChangeSpurious PIChangeResult = iota
	// PINoChange means the code was confirmed, and it matches what was
	// already confirmed.
	PINoChange
	// PIChangeConfirmed means three repeats of a new code have been seen
	// in a row, confirming the station's PI actually changed.
	PIChangeConfirmed
)

// CachedPI tracks a station's PI code across groups that may carry
// isolated bit errors, only accepting a change once the same new value
// has repeated three times in a row. Grounded verbatim on
// original_source/src/channel.cc's CachedPI.
type CachedPI struct {
	confirmed   uint16
	prev1       uint16
	prev2       uint16
	hasPrevious bool
}

// Update feeds the most recently received PI code and reports whether it
// confirms a station change.
func (c *CachedPI) Update(pi uint16) PIChangeResult {
	result := PIChangeSpurious

	if c.hasPrevious && c.prev1 == c.prev2 && pi == c.prev1 {
		if pi == c.confirmed {
			result = PINoChange
		} else {
			result = PIChangeConfirmed
		}

		c.confirmed = pi
	}

	if c.hasPrevious && pi != c.confirmed && c.prev1 != c.confirmed && pi != c.prev1 {
		c.Reset()
	} else {
		c.hasPrevious = true
	}

	c.prev2 = c.prev1
	c.prev1 = pi

	return result
}

// Get returns the last confirmed PI code.
func (c *CachedPI) Get() uint16 { return c.confirmed }

// Reset discards all history, as if no PI had ever been seen.
func (c *CachedPI) Reset() {
	c.confirmed = 0
	c.prev1 = 0
	c.prev2 = 0
	c.hasPrevious = false
}
