package rds

// IfThenElse is a convenience ternary, mirroring C's ?: operator, for the
// group decoders' many two-way field interpretations (A/B toggle labels,
// flag-to-number renderings).
func IfThenElse[T any](cond bool, a T, b T) T { //nolint:ireturn
	if cond {
		return a
	}

	return b
}
