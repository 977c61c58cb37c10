// Package absorber implements file-backed loading of absorber data tables.
//
// Each material lives in a flat text file under the data directory, named
// <Absorber>Data.txt, holding a density line and one MAC line per tabulated
// energy (NIST X-ray mass attenuation table format). Loaded records are
// cached per run since the files are treated as immutable.
package absorber
