package absorber

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeDataFile drops an absorber data file into dir and returns its directory.
func writeDataFile(t *testing.T, dir, name, contents string) {
	t.Helper()

	path := filepath.Join(dir, name+"Data.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

// TestLoadParsesDensityAndCoefficients checks the round-trip of a small table.
func TestLoadParsesDensityAndCoefficients(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDataFile(t, dir, "Aluminum",
		"Density(g/cm^3): 2.7\n"+
			"MAC(MeV,cm^2/g,cm^2/g): 1.0 0.06 0.03\n")

	repo := NewFileRepository(dir)

	record, err := repo.Load(context.Background(), "Aluminum")
	require.NoError(t, err)
	require.True(t, record.HasDensity)
	require.InDelta(t, 2.7, record.Density, 0)
	require.Len(t, record.Points, 1)
	require.InDelta(t, 1.0, record.Points[0].EnergyMeV, 0)
	require.InDelta(t, 0.06, record.Points[0].MassAttenuation, 0)
	require.InDelta(t, 0.03, record.Points[0].MassEnergyAbsorption, 0)
}

// TestLoadSortsUnsortedTable verifies tables are sorted on load.
func TestLoadSortsUnsortedTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDataFile(t, dir, "Shuffled",
		"Density(g/cm^3): 1.0\n"+
			"MAC(MeV,cm^2/g,cm^2/g): 5.0 0.5 0.25\n"+
			"MAC(MeV,cm^2/g,cm^2/g): 1.0 0.1 0.05\n"+
			"MAC(MeV,cm^2/g,cm^2/g): 2.0 0.2 0.10\n")

	repo := NewFileRepository(dir)

	record, err := repo.Load(context.Background(), "Shuffled")
	require.NoError(t, err)
	require.Len(t, record.Points, 3)
	require.InDelta(t, 1.0, record.Points[0].EnergyMeV, 0)
	require.InDelta(t, 2.0, record.Points[1].EnergyMeV, 0)
	require.InDelta(t, 5.0, record.Points[2].EnergyMeV, 0)
}

// TestLoadFirstDensityWins checks that a repeated density line is ignored.
func TestLoadFirstDensityWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDataFile(t, dir, "Doubled",
		"Density(g/cm^3): 2.7\n"+
			"Density(g/cm^3): 9.9\n"+
			"MAC(MeV,cm^2/g,cm^2/g): 1.0 0.06 0.03\n")

	repo := NewFileRepository(dir)

	record, err := repo.Load(context.Background(), "Doubled")
	require.NoError(t, err)
	require.InDelta(t, 2.7, record.Density, 0)
}

// TestLoadMissingFile verifies the not-found error for unknown absorbers.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(t.TempDir())

	_, err := repo.Load(context.Background(), "Unobtainium")
	require.ErrorIs(t, err, ErrNotFound)
}

// TestLoadBadFormat covers malformed data lines: no delimiter, short
// coefficient rows, and unparsable values.
func TestLoadBadFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no delimiter":      "Density(g/cm^3):2.7\n",
		"short coefficient": "MAC(MeV,cm^2/g,cm^2/g): 1.0 0.06\n",
		"bad density":       "Density(g/cm^3): heavy\n",
		"bad coefficient":   "MAC(MeV,cm^2/g,cm^2/g): 1.0 x 0.03\n",
	}
	for label, contents := range cases {
		dir := t.TempDir()
		writeDataFile(t, dir, "Broken", contents)

		repo := NewFileRepository(dir)

		_, err := repo.Load(context.Background(), "Broken")
		require.ErrorIsf(t, err, ErrBadFormat, "case %q", label)
	}
}

// TestLoadIgnoresUnknownTags checks that well-formed lines with other tags
// are skipped rather than rejected.
func TestLoadIgnoresUnknownTags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDataFile(t, dir, "Annotated",
		"Source: NIST XCOM\n"+
			"Density(g/cm^3): 2.7\n"+
			"MAC(MeV,cm^2/g,cm^2/g): 1.0 0.06 0.03\n")

	repo := NewFileRepository(dir)

	record, err := repo.Load(context.Background(), "Annotated")
	require.NoError(t, err)
	require.Len(t, record.Points, 1)
}

// TestLoadMissingDensityAllowed verifies a coefficient-only table loads; the
// density requirement belongs to the density accessor, not the loader.
func TestLoadMissingDensityAllowed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDataFile(t, dir, "CoeffOnly",
		"MAC(MeV,cm^2/g,cm^2/g): 1.0 0.06 0.03\n")

	repo := NewFileRepository(dir)

	record, err := repo.Load(context.Background(), "CoeffOnly")
	require.NoError(t, err)
	require.False(t, record.HasDensity)
}

// TestLoadCachesRecords checks that a second load returns the cached record
// even after the underlying file is removed.
func TestLoadCachesRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDataFile(t, dir, "Cached",
		"Density(g/cm^3): 2.7\n"+
			"MAC(MeV,cm^2/g,cm^2/g): 1.0 0.06 0.03\n")

	repo := NewFileRepository(dir)

	first, err := repo.Load(context.Background(), "Cached")
	require.NoError(t, err)

	require.NoError(t, os.Remove(repo.Path("Cached")))

	second, err := repo.Load(context.Background(), "Cached")
	require.NoError(t, err)
	require.Same(t, first, second)
}
