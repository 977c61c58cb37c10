package runner

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	domain "github.com/gilliss/gamma-atten/internal/domain/absorber"
	"github.com/gilliss/gamma-atten/internal/service/attenuation"
)

// renderReport prints the layer-by-layer summary table for a finished run.
func renderReport(w io.Writer, steps []*attenuation.Result, beam *domain.Beam) {
	table := tablewriter.NewTable(w)
	table.Header("#", "Absorber", "Thickness (cm)", "Energy (MeV)", "MAC (cm^2/g)", "Transmit", "Intensity")

	intensity := 1.0
	for i, step := range steps {
		intensity *= step.Transmittance

		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			step.Absorber,
			formatFloat(step.ThicknessCm),
			formatFloat(step.Match.EnergyMeV),
			formatFloat(step.Match.MassAttenuation),
			formatFloat(step.Transmittance),
			formatFloat(intensity),
		})
	}

	_ = table.Append([]string{
		"", "final", "", "", "", "", formatFloat(beam.Intensity),
	})

	_ = table.Render()
}

// formatFloat renders a value compactly for the report.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
