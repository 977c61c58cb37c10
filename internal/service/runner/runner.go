package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gilliss/gamma-atten/internal/config"
	domain "github.com/gilliss/gamma-atten/internal/domain/absorber"
	"github.com/gilliss/gamma-atten/internal/logger"
	repo "github.com/gilliss/gamma-atten/internal/repository/absorber"
	"github.com/gilliss/gamma-atten/internal/service/attenuation"
)

// Options controls a script run.
type Options struct {
	// ScriptPath is the instruction script to execute.
	ScriptPath string
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// DataDir provides an optional data directory override.
	DataDir string
	// LogLevel provides an optional diagnostics level override.
	LogLevel string
	// ReportWriter receives the end-of-run summary table.
	// Defaults to os.Stdout.
	ReportWriter io.Writer
}

const (
	// energyTag marks an instruction setting the beam energy in keV.
	energyTag = "Gamma(keV):"
	// shieldTag marks an instruction adding a shielding layer:
	// absorber name and thickness in cm, comma-separated.
	shieldTag = "Shield(type,cm):"
)

// ErrScriptFormat is returned when an instruction line has no tag delimiter
// or carries arguments that do not parse.
var ErrScriptFormat = errors.New("unexpected script format")

// Run executes the instruction script named in opts and returns the final
// beam state. The run is strictly sequential: intensity after each layer
// feeds the next. Any error aborts the run; diagnostics already logged for
// prior instructions stand.
func Run(ctx context.Context, opts *Options) (*domain.Beam, error) {
	ctx = logger.WithName(ctx, "gamma-atten")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Command line arguments override config.
	dataDir := cfg.DataDir
	if opts.DataDir != "" {
		dataDir = opts.DataDir
	}

	logLevel := cfg.LogLevel
	if opts.LogLevel != "" {
		logLevel = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level: %q", logLevel)
	}

	logger.SetLevel(level)

	reportWriter := opts.ReportWriter
	if reportWriter == nil {
		reportWriter = os.Stdout
	}

	script, err := os.Open(filepath.Clean(opts.ScriptPath))
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}

	defer func() {
		_ = script.Close()
	}()

	engine := attenuation.NewService(repo.NewFileRepository(dataDir))

	logger.InfoKV(ctx, "Executing script", "script", opts.ScriptPath, "data_dir", dataDir)

	beam, steps, err := execute(ctx, engine, script, opts.ScriptPath)
	if err != nil {
		return nil, err
	}

	renderReport(reportWriter, steps, beam)

	return beam, nil
}

// execute runs every instruction in the script against the engine and
// returns the final beam state along with the per-layer steps.
func execute(
	ctx context.Context,
	engine *attenuation.Service,
	script io.Reader,
	scriptPath string,
) (*domain.Beam, []*attenuation.Result, error) {
	var (
		beam       = domain.NewBeam()
		steps      []*attenuation.Result
		lineNumber int
	)

	scanner := bufio.NewScanner(script)
	for scanner.Scan() {
		lineNumber++

		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		tag, args, found := strings.Cut(scanner.Text(), " ")
		if !found {
			return nil, nil, fmt.Errorf("%w: %s:%d: no delimiter", ErrScriptFormat, scriptPath, lineNumber)
		}

		switch tag {
		case energyTag:
			energy, err := strconv.ParseFloat(strings.TrimSpace(args), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s:%d: bad energy: %s", ErrScriptFormat, scriptPath, lineNumber, args)
			}

			beam.EnergyKeV = energy
			logger.Infof(ctx, "Setting gamma-ray energy to %g keV", energy)
		case shieldTag:
			layer, err := parseLayer(args)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s:%d: %v", ErrScriptFormat, scriptPath, lineNumber, err)
			}

			logger.Infof(ctx, "Calculating intensity following %g cm of %s", layer.ThicknessCm, layer.Absorber)

			result, err := engine.Transmit(ctx, layer.Absorber, layer.ThicknessCm, beam.EnergyKeV)
			if err != nil {
				return nil, nil, err
			}

			beam.Attenuate(result.Transmittance)
			steps = append(steps, result)

			logger.InfoKV(ctx, "Layer transmittance",
				"absorber", layer.Absorber,
				"thickness_cm", layer.ThicknessCm,
				"transmit_frac", result.Transmittance)
			logger.InfoKV(ctx, "Remaining intensity",
				"intensity", beam.Intensity,
				"initial", 1.0)
		default:
			// Unrecognized instructions are skipped.
			logger.Debugf(ctx, "Skipping instruction %q at %s:%d", tag, scriptPath, lineNumber)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read script: %w", err)
	}

	return beam, steps, nil
}

// parseLayer parses the "<absorber>,<thickness>" arguments of a shield
// instruction.
func parseLayer(args string) (*domain.Layer, error) {
	name, thicknessArg, found := strings.Cut(args, ",")
	if !found {
		return nil, fmt.Errorf("want <absorber>,<thickness>, got %q", args)
	}

	thickness, err := strconv.ParseFloat(strings.TrimSpace(thicknessArg), 64)
	if err != nil {
		return nil, fmt.Errorf("bad thickness %q", thicknessArg)
	}

	return &domain.Layer{
		Absorber:    strings.TrimSpace(name),
		ThicknessCm: thickness,
	}, nil
}
