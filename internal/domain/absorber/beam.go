package absorber

// Layer is one shielding instruction: a named absorber and its thickness.
type Layer struct {
	// Absorber is the material name, matching a data file.
	Absorber string
	// ThicknessCm is the layer thickness in centimeters.
	ThicknessCm float64
}

// Beam is the running state of the gamma beam as it crosses layers.
type Beam struct {
	// EnergyKeV is the current beam energy in keV. It persists across layers
	// until changed by an energy instruction.
	EnergyKeV float64
	// Intensity is the remaining intensity as a ratio of the initial beam.
	Intensity float64
}

// NewBeam returns the initial beam state: full intensity, no energy set.
func NewBeam() *Beam {
	return &Beam{
		EnergyKeV: 0,
		Intensity: 1.0,
	}
}

// Attenuate multiplies the remaining intensity by a layer's transmittance.
func (b *Beam) Attenuate(transmittance float64) {
	b.Intensity *= transmittance
}
