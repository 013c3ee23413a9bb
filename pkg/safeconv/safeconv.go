// Package safeconv provides integer conversions that cannot wrap around.
package safeconv

// ClampUint64 converts v to uint64. Negative values become 0.
func ClampUint64(v int64) uint64 {
	if v < 0 {
		return 0
	}

	return uint64(v)
}
