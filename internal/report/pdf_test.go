package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbomkit/vex2pdf/internal/config"
	"github.com/sbomkit/vex2pdf/internal/vex/vextest"
)

func TestGenerate(t *testing.T) {
	scenarios := []struct {
		name string
		mut  func(cfg *config.Config)
		bom  bool // use the no-vulnerabilities sample
	}{
		{name: "vulnerability report"},
		{name: "report with components", mut: func(cfg *config.Config) { cfg.ShowComponents = true }},
		{name: "empty report with banner", bom: true},
		{name: "empty report without banner", bom: true, mut: func(cfg *config.Config) { cfg.ShowNoVulnsMsg = false }},
		{name: "pure BOM report", bom: true, mut: func(cfg *config.Config) { cfg.PureBOMNoVulns = true }},
		{name: "custom titles", mut: func(cfg *config.Config) {
			cfg.ReportTitle = "Quarterly VEX Review"
			cfg.PDFMetaName = "Quarterly VEX Review"
		}},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			cfg, err := config.Default()
			require.NoError(t, err)
			if scenario.mut != nil {
				scenario.mut(&cfg)
			}

			bom := vextest.Sample()
			if scenario.bom {
				bom = vextest.SampleNoVulns()
			}

			out := filepath.Join(t.TempDir(), "report.pdf")
			require.NoError(t, New(&cfg).Generate(bom, out))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			require.True(t, len(data) > 512, "suspiciously small PDF")
			require.Equal(t, "%PDF", string(data[:4]))
		})
	}
}

func TestGenerateNoSerialNumber(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	bom := vextest.Sample()
	bom.SerialNumber = ""

	out := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, New(&cfg).Generate(bom, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}

func TestGenerateBadPath(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "missing", "report.pdf")
	require.Error(t, New(&cfg).Generate(vextest.Sample(), out))
}
