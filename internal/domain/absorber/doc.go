// Package absorber contains core domain types for shielding calculations.
//
// It defines Record (one absorber material with its density and tabulated
// mass-attenuation coefficients), the nearest-energy lookup over the sorted
// coefficient table, Layer (one shielding instruction) and Beam (the running
// intensity accumulator).
package absorber
