// Package vextest builds CycloneDX fixtures for tests.
package vextest

import (
	"bytes"
	"os"
	"testing"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/stretchr/testify/require"
)

// Sample returns a small VEX document with metadata, two components and two
// rated vulnerabilities, one of them referencing a component.
func Sample() *cdx.BOM {
	score := 8.1
	lowScore := 6.5

	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:3e671687-395b-41f5-a30f-a58921a69b79"
	bom.Metadata = &cdx.Metadata{
		Timestamp: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC).Format(time.RFC3339),
		Tools: &cdx.ToolsChoice{
			Components: &[]cdx.Component{
				{Type: cdx.ComponentTypeApplication, Name: "trivy", Version: "0.58.0"},
			},
		},
		Component: &cdx.Component{
			Type:    cdx.ComponentTypeApplication,
			Name:    "shop-backend",
			Version: "2.4.1",
		},
	}
	bom.Components = &[]cdx.Component{
		{
			BOMRef:  "pkg:golang/example.com/libauth@1.2.3",
			Type:    cdx.ComponentTypeLibrary,
			Name:    "libauth",
			Version: "1.2.3",
		},
		{
			BOMRef:  "pkg:golang/example.com/libfmt@0.9.0",
			Type:    cdx.ComponentTypeLibrary,
			Name:    "libfmt",
			Version: "0.9.0",
		},
	}
	bom.Vulnerabilities = &[]cdx.Vulnerability{
		{
			ID:             "CVE-2024-12345",
			Description:    "Known vulnerability in library that allows unauthorized access",
			Detail:         "Detailed explanation of the vulnerability and its potential impact.",
			Recommendation: "Upgrade to version 1.2.4 or later",
			Ratings: &[]cdx.VulnerabilityRating{
				{
					Score:    &score,
					Severity: cdx.SeverityHigh,
					Method:   cdx.ScoringMethodCVSSv31,
					Vector:   "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H",
					Source:   &cdx.Source{Name: "NVD"},
				},
			},
			Affects: &[]cdx.Affects{
				{Ref: "pkg:golang/example.com/libauth@1.2.3"},
			},
		},
		{
			ID:          "CVE-2024-99999",
			Description: "Component does not use the affected code path",
			Ratings: &[]cdx.VulnerabilityRating{
				{
					Score:    &lowScore,
					Severity: cdx.SeverityMedium,
					Method:   cdx.ScoringMethodCVSSv31,
				},
			},
		},
	}
	return bom
}

// SampleNoVulns returns a pure BOM without a vulnerabilities section.
func SampleNoVulns() *cdx.BOM {
	bom := Sample()
	bom.Vulnerabilities = nil
	return bom
}

// Encode serializes bom in the given format.
func Encode(t *testing.T, bom *cdx.BOM, format cdx.BOMFileFormat) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, cdx.NewBOMEncoder(&buf, format).Encode(bom))
	return buf.Bytes()
}

// WriteFile serializes bom to path in the given format.
func WriteFile(t *testing.T, bom *cdx.BOM, path string, format cdx.BOMFileFormat) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, Encode(t, bom, format), 0o644))
}
