package vex_test

import (
	"bytes"
	"strings"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/sbomkit/vex2pdf/internal/model"
	"github.com/sbomkit/vex2pdf/internal/vex"
	"github.com/sbomkit/vex2pdf/internal/vex/vextest"
	"github.com/stretchr/testify/require"
)

func TestParseJSONRoundTrip(t *testing.T) {
	t.Parallel()

	want := vextest.Sample()
	raw := vextest.Encode(t, want, cdx.BOMFileFormatJSON)

	got, err := vex.ParseJSON(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, want.SerialNumber, got.SerialNumber)
	require.NotNil(t, got.Vulnerabilities)
	require.Len(t, *got.Vulnerabilities, 2)
}

func TestParseXMLRoundTrip(t *testing.T) {
	t.Parallel()

	want := vextest.Sample()
	raw := vextest.Encode(t, want, cdx.BOMFileFormatXML)

	got, err := vex.ParseXML(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, want.SerialNumber, got.SerialNumber)
	require.NotNil(t, got.Components)
	require.Len(t, *got.Components, 2)
}

func TestParseByKind(t *testing.T) {
	t.Parallel()

	raw := vextest.Encode(t, vextest.Sample(), cdx.BOMFileFormatJSON)
	_, err := vex.Parse(bytes.NewReader(raw), model.KindJSON)
	require.NoError(t, err)

	_, err = vex.Parse(bytes.NewReader(raw), model.KindUnsupported)
	require.ErrorIs(t, err, model.ErrUnsupportedType)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	_, err := vex.ParseJSON(strings.NewReader("{ not json"))
	require.Error(t, err)

	_, err = vex.ParseXML(strings.NewReader("<bom"))
	require.Error(t, err)
}
