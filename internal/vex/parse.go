// Package vex parses CycloneDX VEX/VDR/SBOM documents.
package vex

import (
	"fmt"
	"io"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/sbomkit/vex2pdf/internal/model"
)

// Parse decodes one document of the given kind. The kind must be recognized;
// the caller guarantees that by construction, but KindUnsupported is still
// answered with an error rather than a panic.
func Parse(r io.Reader, kind model.Kind) (*cdx.BOM, error) {
	switch kind {
	case model.KindJSON:
		return ParseJSON(r)
	case model.KindXML:
		return ParseXML(r)
	default:
		return nil, model.ErrUnsupportedType
	}
}

// ParseJSON decodes a CycloneDX JSON document.
func ParseJSON(r io.Reader) (*cdx.BOM, error) {
	return decode(r, cdx.BOMFileFormatJSON)
}

// ParseXML decodes a CycloneDX XML document.
func ParseXML(r io.Reader) (*cdx.BOM, error) {
	return decode(r, cdx.BOMFileFormatXML)
}

func decode(r io.Reader, format cdx.BOMFileFormat) (*cdx.BOM, error) {
	var bom cdx.BOM
	if err := cdx.NewBOMDecoder(r, format).Decode(&bom); err != nil {
		return nil, fmt.Errorf("decoding BOM: %w", err)
	}
	return &bom, nil
}
