package attenuation

import (
	"context"
	"fmt"
	"math"

	domain "github.com/gilliss/gamma-atten/internal/domain/absorber"
	"github.com/gilliss/gamma-atten/internal/logger"
	repo "github.com/gilliss/gamma-atten/internal/repository/absorber"
)

// keVPerMeV converts script energies (keV) to table energies (MeV).
const keVPerMeV = 1000.0

// Service computes attenuation quantities for named absorbers.
// It holds no state of its own; all data comes from the repository.
type Service struct {
	// repo resolves absorber names to their data records.
	repo repo.Repository
}

// Match is the outcome of a nearest-energy coefficient lookup.
type Match struct {
	// EnergyMeV is the tabulated energy of the matched row.
	EnergyMeV float64
	// MassAttenuation is the matched coefficient in cm²/g.
	MassAttenuation float64
	// LowerMeV and UpperMeV are the two candidate energies considered,
	// clamped to the table edges.
	LowerMeV float64
	UpperMeV float64
}

// Result describes one layer's transmittance together with the inputs that
// produced it, for logging and reporting.
type Result struct {
	// Absorber is the material name.
	Absorber string
	// ThicknessCm is the layer thickness in centimeters.
	ThicknessCm float64
	// Density is the material density in g/cm³.
	Density float64
	// Match is the coefficient lookup behind the computation.
	Match Match
	// Transmittance is the fraction of the beam surviving the layer.
	Transmittance float64
}

// NewService creates an engine over the provided repository.
func NewService(repository repo.Repository) *Service {
	return &Service{repo: repository}
}

// Density returns the named absorber's density in g/cm³.
func (s *Service) Density(ctx context.Context, name string) (float64, error) {
	record, err := s.repo.Load(ctx, name)
	if err != nil {
		return 0, err
	}

	if !record.HasDensity {
		return 0, fmt.Errorf("%w: %s", domain.ErrMissingDensity, name)
	}

	return record.Density, nil
}

// MassAttenuationCoefficient returns the tabulated coefficient closest to the
// requested energy. The energy is given in keV and converted to MeV for
// comparison with the table.
func (s *Service) MassAttenuationCoefficient(ctx context.Context, name string, energyKeV float64) (Match, error) {
	record, err := s.repo.Load(ctx, name)
	if err != nil {
		return Match{}, err
	}

	energyMeV := energyKeV / keVPerMeV

	lower, upper, err := record.NearestCandidates(energyMeV)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %s", err, name)
	}

	logger.InfoKV(ctx, "Closest tabulated energies",
		"absorber", name,
		"query_mev", energyMeV,
		"lower_mev", lower,
		"upper_mev", upper)

	index, err := record.NearestIndex(energyMeV)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %s", err, name)
	}

	point := record.Points[index]
	logger.InfoKV(ctx, "Energy and coefficient used",
		"absorber", name,
		"energy_kev", energyKeV,
		"matched_mev", point.EnergyMeV,
		"mac_cm2_per_g", point.MassAttenuation)

	return Match{
		EnergyMeV:       point.EnergyMeV,
		MassAttenuation: point.MassAttenuation,
		LowerMeV:        lower,
		UpperMeV:        upper,
	}, nil
}

// Transmit computes the fraction of the beam that survives a layer of the
// named absorber. The result is in (0, 1] for non-negative inputs; zero
// thickness yields exactly 1.
func (s *Service) Transmit(ctx context.Context, name string, thicknessCm, energyKeV float64) (*Result, error) {
	density, err := s.Density(ctx, name)
	if err != nil {
		return nil, err
	}

	match, err := s.MassAttenuationCoefficient(ctx, name, energyKeV)
	if err != nil {
		return nil, err
	}

	return &Result{
		Absorber:      name,
		ThicknessCm:   thicknessCm,
		Density:       density,
		Match:         match,
		Transmittance: math.Exp(-match.MassAttenuation * density * thicknessCm),
	}, nil
}
