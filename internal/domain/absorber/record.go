package absorber

import (
	"errors"
	"math"
	"sort"
)

// Point is one tabulated row of an absorber's coefficient table.
type Point struct {
	// EnergyMeV is the photon energy of the tabulated row, in MeV.
	EnergyMeV float64
	// MassAttenuation is the mass attenuation coefficient, in cm²/g.
	MassAttenuation float64
	// MassEnergyAbsorption is the mass energy-absorption coefficient, in cm²/g.
	// It is carried through from the data files but not used in transmittance.
	MassEnergyAbsorption float64
}

// Record represents one named shielding material and its tabulated data.
type Record struct {
	// Name is the absorber identifier, also used to locate its data file.
	Name string
	// Density is the material density in g/cm³. Valid only if HasDensity is set.
	Density float64
	// HasDensity reports whether the data file contained a density line.
	// A table used only for coefficient lookups does not require one.
	HasDensity bool
	// Points is the coefficient table, sorted ascending by energy.
	Points []Point
}

var (
	// ErrMissingDensity is returned when a record's data file had no density line.
	ErrMissingDensity = errors.New("no density in data file")
	// ErrNoCoefficients is returned when a coefficient lookup hits an empty table.
	ErrNoCoefficients = errors.New("no mass attenuation coefficients in data file")
)

// NewRecord builds a record from parsed data, sorting the coefficient table
// by energy. The sort is stable so duplicate energies keep file order and
// lookups resolve to the first occurrence.
func NewRecord(name string, density float64, hasDensity bool, points []Point) *Record {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].EnergyMeV < points[j].EnergyMeV
	})

	return &Record{
		Name:       name,
		Density:    density,
		HasDensity: hasDensity,
		Points:     points,
	}
}

// NearestIndex returns the index of the tabulated point whose energy is
// closest to the query, in MeV. The upper candidate is the first point with
// energy not less than the query and the lower candidate is the one before
// it; both clamp to the table edges. A distance tie resolves to the upper
// candidate, so an exact match always returns its own row.
func (r *Record) NearestIndex(energyMeV float64) (int, error) {
	if len(r.Points) == 0 {
		return 0, ErrNoCoefficients
	}

	lower, upper := r.candidates(energyMeV)
	if math.Abs(r.Points[upper].EnergyMeV-energyMeV) <= math.Abs(r.Points[lower].EnergyMeV-energyMeV) {
		return upper, nil
	}

	return lower, nil
}

// NearestCandidates returns the clamped lower and upper candidate energies
// considered by NearestIndex, for diagnostics.
func (r *Record) NearestCandidates(energyMeV float64) (lowerMeV, upperMeV float64, err error) {
	if len(r.Points) == 0 {
		return 0, 0, ErrNoCoefficients
	}

	lower, upper := r.candidates(energyMeV)

	return r.Points[lower].EnergyMeV, r.Points[upper].EnergyMeV, nil
}

// candidates locates the neighboring table indexes around the query energy.
// Requires a non-empty table.
func (r *Record) candidates(energyMeV float64) (lower, upper int) {
	upper = sort.Search(len(r.Points), func(i int) bool {
		return r.Points[i].EnergyMeV >= energyMeV
	})

	lower = upper - 1

	// Clamp to the table edges.
	if upper >= len(r.Points) {
		upper = len(r.Points) - 1
	}

	if lower < 0 {
		lower = 0
	}

	return lower, upper
}
