// Package units converts between angular and linear group sizes.
package units

// Angular size constants.
const (
	// InchesPerMOAAt100 is the true size of one minute of angle at 100 yards.
	InchesPerMOAAt100 = 1.047
	// InchesPerSMOAAt100 is the "shooter's MOA": one inch per hundred yards.
	InchesPerSMOAAt100 = 1.0
	// yardsPerHundred scales a distance to hundreds of yards.
	yardsPerHundred = 100.0
)

// MOAToInches returns the linear size of moa at the given distance.
func MOAToInches(moa, yards float64) float64 {
	return moa * InchesPerMOAAt100 * yards / yardsPerHundred
}

// InchesToMOA returns the angular size of inches at the given distance.
// Returns 0 for a non-positive distance.
func InchesToMOA(inches, yards float64) float64 {
	if yards <= 0 {
		return 0
	}

	return inches / (InchesPerMOAAt100 * yards / yardsPerHundred)
}

// ShooterMOAToInches uses the one-inch-per-hundred-yards approximation.
func ShooterMOAToInches(moa, yards float64) float64 {
	return moa * InchesPerSMOAAt100 * yards / yardsPerHundred
}
