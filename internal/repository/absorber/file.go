package absorber

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	domain "github.com/gilliss/gamma-atten/internal/domain/absorber"
)

// Repository defines lookup of absorber records by material name.
type Repository interface {
	Load(ctx context.Context, name string) (*domain.Record, error)
}

// FileRepository loads absorber records from per-material text files and
// caches them by name. The cache is read-only after population; the mutex
// only makes the type safe to share.
type FileRepository struct {
	// dataDir is the directory holding the per-material data files.
	dataDir string
	// cache holds records already loaded during this run.
	cache map[string]*domain.Record
	// mu protects concurrent access to the cache.
	mu sync.Mutex
}

const (
	// dataFileSuffix completes a material name into its data file name.
	dataFileSuffix = "Data.txt"

	// densityTag marks the single density line of a data file.
	densityTag = "Density(g/cm^3):"
	// coefficientTag marks one tabulated coefficient row:
	// energy (MeV), mass attenuation (cm²/g), mass energy-absorption (cm²/g).
	coefficientTag = "MAC(MeV,cm^2/g,cm^2/g):"

	// coefficientFieldCount is the number of values on a coefficient line.
	coefficientFieldCount = 3
)

var (
	// ErrNotFound is returned when an absorber's data file is missing or unreadable.
	ErrNotFound = errors.New("absorber data file not found")
	// ErrBadFormat is returned when a data file line has no tag delimiter or
	// carries values that do not parse.
	ErrBadFormat = errors.New("unexpected data file format")
)

// NewFileRepository creates a repository over the provided data directory.
func NewFileRepository(dataDir string) *FileRepository {
	return &FileRepository{
		dataDir: filepath.Clean(dataDir),
		cache:   make(map[string]*domain.Record),
	}
}

// Path returns the data file path for the named absorber.
func (r *FileRepository) Path(name string) string {
	return filepath.Join(r.dataDir, name+dataFileSuffix)
}

// Load returns the record for the named absorber, reading and parsing its
// data file on first use.
func (r *FileRepository) Load(_ context.Context, name string) (*domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record, ok := r.cache[name]; ok {
		return record, nil
	}

	record, err := r.parseFile(name)
	if err != nil {
		return nil, err
	}

	r.cache[name] = record

	return record, nil
}

// parseFile reads one data file into a record, sorting its table on load so
// unsorted files still support nearest lookups.
func (r *FileRepository) parseFile(name string) (*domain.Record, error) {
	path := r.Path(name)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	defer func() {
		_ = file.Close()
	}()

	var (
		density    float64
		hasDensity bool
		points     []domain.Point
		lineNumber int
	)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++

		line := scanner.Text()

		tag, args, found := strings.Cut(line, " ")
		if !found {
			return nil, fmt.Errorf("%w: %s:%d: no delimiter", ErrBadFormat, path, lineNumber)
		}

		switch tag {
		case densityTag:
			// First occurrence wins; later density lines are ignored.
			if hasDensity {
				continue
			}

			density, err = strconv.ParseFloat(strings.TrimSpace(args), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: bad density: %s", ErrBadFormat, path, lineNumber, args)
			}

			hasDensity = true
		case coefficientTag:
			point, err := parseCoefficientLine(args)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", ErrBadFormat, path, lineNumber, err)
			}

			points = append(points, point)
		default:
			// Other tags are informational and skipped.
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return domain.NewRecord(name, density, hasDensity, points), nil
}

// parseCoefficientLine parses the three floats of a coefficient row.
func parseCoefficientLine(args string) (domain.Point, error) {
	fields := strings.Fields(args)
	if len(fields) != coefficientFieldCount {
		return domain.Point{}, fmt.Errorf("want %d values, got %d", coefficientFieldCount, len(fields))
	}

	values := make([]float64, coefficientFieldCount)
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return domain.Point{}, fmt.Errorf("bad value %q", field)
		}

		values[i] = value
	}

	return domain.Point{
		EnergyMeV:            values[0],
		MassAttenuation:      values[1],
		MassEnergyAbsorption: values[2],
	}, nil
}
