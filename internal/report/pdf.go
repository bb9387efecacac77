// Package report renders a CycloneDX document into a PDF file.
//
// The layout follows the converter's report format: a title page with
// document information, a BOM summary block, a numbered vulnerabilities
// section with color-coded identifiers and severity ratings, and an optional
// component list. Pure-BOM mode drops the vulnerabilities section entirely.
package report

import (
	"fmt"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/sbomkit/vex2pdf/internal/config"
)

const (
	defaultReportTitle    = "Vulnerability Report Document"
	defaultReportTitleBOM = "Bill of Materials Document"
	defaultMetaName       = "Vulnerability Report"
	defaultMetaNameBOM    = "Bill of Materials"

	lineHeight = 5.5
)

type style struct {
	size    float64
	r, g, b int
	variant string // "", "B", "I", "BI"
}

var (
	titleStyle    = style{18, 0, 0, 80, ""}
	headerStyle   = style{14, 0, 0, 80, ""}
	normalStyle   = style{11, 0, 0, 0, ""}
	boldStyle     = style{11, 0, 0, 0, "B"}
	indentStyle   = style{10, 40, 40, 40, ""}
	indentBold    = style{10, 40, 40, 40, "B"}
	compNameStyle = style{10, 0, 51, 102, "I"}
	versionStyle  = style{10, 128, 128, 128, ""}
	cveIDStyle    = style{11, 139, 0, 0, "B"}
	noVulnsStyle  = style{16, 0, 100, 0, "B"}
	pageHeadStyle = style{10, 0, 0, 80, ""}
)

// Generator renders documents according to the run configuration. It holds
// no per-document state and is safe to share across jobs.
type Generator struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate writes the PDF report for bom to outputPath.
func (g *Generator) Generate(bom *cdx.BOM, outputPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle(g.metaName(), true)
	pdf.SetCreator("vex2pdf", true)

	title := g.reportTitle()
	pdf.SetHeaderFuncMode(func() {
		if pdf.PageNo() <= 1 {
			return
		}
		apply(pdf, pageHeadStyle)
		pdf.CellFormat(0, 5, title, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}, true)

	pdf.AddPage()

	apply(pdf, titleStyle)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	g.writeDocInfo(pdf, bom)
	g.writeBOMInfo(pdf, bom)

	if !g.cfg.PureBOMNoVulns {
		g.writeVulns(pdf, bom)
	}
	if g.cfg.PureBOMNoVulns || g.cfg.ShowComponents {
		g.writeComponents(pdf, bom)
	}

	if pdf.Err() {
		return fmt.Errorf("rendering PDF: %w", pdf.Error())
	}
	return pdf.OutputFileAndClose(outputPath)
}

func (g *Generator) reportTitle() string {
	switch {
	case g.cfg.ReportTitle != "":
		return g.cfg.ReportTitle
	case g.cfg.PureBOMNoVulns:
		return defaultReportTitleBOM
	default:
		return defaultReportTitle
	}
}

func (g *Generator) metaName() string {
	switch {
	case g.cfg.PDFMetaName != "":
		return g.cfg.PDFMetaName
	case g.cfg.PureBOMNoVulns:
		return defaultMetaNameBOM
	default:
		return defaultMetaName
	}
}

func (g *Generator) writeDocInfo(pdf *fpdf.Fpdf, bom *cdx.BOM) {
	meta := bom.Metadata
	if meta == nil {
		return
	}

	apply(pdf, headerStyle)
	pdf.CellFormat(0, 7, "Document Information", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if meta.Timestamp != "" {
		apply(pdf, style{11, 0, 0, 0, "I"})
		pdf.CellFormat(0, lineHeight, "Date: "+meta.Timestamp, "", 1, "L", false, 0, "")
	}

	if meta.Tools != nil {
		apply(pdf, boldStyle)
		pdf.CellFormat(0, lineHeight, "Tools:", "", 1, "L", false, 0, "")
		for _, name := range toolNames(meta.Tools) {
			apply(pdf, indentStyle)
			pdf.CellFormat(0, lineHeight, "  - "+name, "", 1, "L", false, 0, "")
		}
	}

	if meta.Component != nil {
		writeInline(pdf,
			run{"Component name: ", boldStyle},
			run{versioned(meta.Component.Name, meta.Component.Version), indentStyle},
		)
	}
	pdf.Ln(4)
}

func (g *Generator) writeBOMInfo(pdf *fpdf.Fpdf, bom *cdx.BOM) {
	writeInline(pdf, run{"BOM Format: ", boldStyle}, run{"CycloneDX", normalStyle})
	writeInline(pdf, run{"Specification Version: ", boldStyle}, run{bom.SpecVersion.String(), normalStyle})
	writeInline(pdf, run{"Version: ", boldStyle}, run{fmt.Sprint(bom.Version), normalStyle})

	serial := bom.SerialNumber
	if serial == "" {
		// stamp a generated report identifier so every rendered report
		// stays referenceable
		serial = "urn:uuid:" + uuid.New().String() + " (generated)"
	}
	writeInline(pdf, run{"Serial Number: ", boldStyle}, run{serial, normalStyle})
	pdf.Ln(6)
}

func (g *Generator) writeVulns(pdf *fpdf.Fpdf, bom *cdx.BOM) {
	var vulns []cdx.Vulnerability
	if bom.Vulnerabilities != nil {
		vulns = *bom.Vulnerabilities
	}

	if len(vulns) > 0 || g.cfg.ShowNoVulnsMsg {
		apply(pdf, headerStyle)
		pdf.CellFormat(0, 7, "Vulnerabilities", "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	if len(vulns) == 0 {
		if g.cfg.ShowNoVulnsMsg {
			apply(pdf, noVulnsStyle)
			pdf.Ln(4)
			pdf.CellFormat(0, 14, "No Vulnerabilities reported", "1", 1, "C", false, 0, "")
			pdf.Ln(4)
		}
		return
	}

	refs := componentIndex(bom)
	for i, vuln := range vulns {
		g.writeVuln(pdf, i+1, vuln, refs)
	}
	pdf.Ln(2)
}

func (g *Generator) writeVuln(pdf *fpdf.Fpdf, num int, vuln cdx.Vulnerability, refs map[string]string) {
	id := vuln.ID
	if id == "" {
		id = "N/A"
	}
	writeInline(pdf,
		run{fmt.Sprintf("%d.  ID: ", num), normalStyle},
		run{id, cveIDStyle},
	)

	desc := strings.TrimSpace(vuln.Description)
	if desc == "" {
		desc = "N/A"
	}
	// split explicitly so embedded newlines wrap as separate lines
	first, rest, _ := strings.Cut(desc, "\n")
	writeInline(pdf, run{"Description: ", indentBold}, run{strings.TrimSpace(first), indentStyle})
	for line := range strings.Lines(rest) {
		apply(pdf, indentStyle)
		pdf.MultiCell(0, lineHeight, strings.TrimSpace(line), "", "L", false)
	}

	for _, rating := range ratings(vuln) {
		if rating.Severity == "" {
			continue
		}
		method := "N/A"
		if rating.Method != "" {
			method = string(rating.Method)
		}
		line := fmt.Sprintf("%s (%s", rating.Severity, method)
		if rating.Source != nil && rating.Source.Name != "" {
			line += " - Source: " + rating.Source.Name
		}
		line += ")"
		writeInline(pdf, run{"  - Severity: ", indentBold}, run{line, indentStyle})
	}

	if affected := affectedComponents(vuln, refs); len(affected) != 0 {
		pdf.Ln(1)
		writeInline(pdf,
			run{"Affected Document Components: [ ", indentBold},
			run{strings.Join(affected, ", "), compNameStyle},
			run{" ]", indentBold},
		)
	}
	pdf.Ln(3)
}

func (g *Generator) writeComponents(pdf *fpdf.Fpdf, bom *cdx.BOM) {
	if bom.Components == nil {
		return
	}

	apply(pdf, headerStyle)
	pdf.CellFormat(0, 7, "Components", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, comp := range *bom.Components {
		writeInline(pdf, run{"Name: ", indentStyle}, run{comp.Name, compNameStyle})
		if comp.Version != "" {
			writeInline(pdf, run{"Version: ", indentStyle}, run{comp.Version, versionStyle})
		}
		pdf.Ln(2)
	}
}

// componentIndex maps bom-refs to "name: version" labels for resolving the
// affected-component references inside vulnerabilities.
func componentIndex(bom *cdx.BOM) map[string]string {
	if bom.Components == nil {
		return nil
	}
	refs := make(map[string]string, len(*bom.Components))
	for _, comp := range *bom.Components {
		if comp.BOMRef == "" {
			continue
		}
		version := comp.Version
		if version == "" {
			version = "undefined"
		}
		refs[comp.BOMRef] = comp.Name + ": " + version
	}
	return refs
}

func affectedComponents(vuln cdx.Vulnerability, refs map[string]string) []string {
	if vuln.Affects == nil || len(refs) == 0 {
		return nil
	}
	var out []string
	for _, affects := range *vuln.Affects {
		if label, ok := refs[affects.Ref]; ok {
			out = append(out, label)
		}
	}
	return out
}

func ratings(vuln cdx.Vulnerability) []cdx.VulnerabilityRating {
	if vuln.Ratings == nil {
		return nil
	}
	return *vuln.Ratings
}

// toolNames flattens the CycloneDX tools choice (legacy tool list, or
// components and services) into display labels.
func toolNames(tools *cdx.ToolsChoice) []string {
	var names []string
	if tools.Tools != nil {
		for _, tool := range *tools.Tools {
			names = append(names, versioned(tool.Name, tool.Version))
		}
	}
	if tools.Components != nil {
		for _, comp := range *tools.Components {
			names = append(names, versioned(comp.Name, comp.Version))
		}
	}
	if tools.Services != nil {
		for _, svc := range *tools.Services {
			names = append(names, versioned(svc.Name, svc.Version))
		}
	}
	return names
}

func versioned(name, version string) string {
	if version == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, version)
}

type run struct {
	text string
	sty  style
}

// writeInline writes styled runs on one line and terminates it.
func writeInline(pdf *fpdf.Fpdf, runs ...run) {
	for _, r := range runs {
		apply(pdf, r.sty)
		pdf.Write(lineHeight, r.text)
	}
	pdf.Ln(lineHeight)
}

func apply(pdf *fpdf.Fpdf, s style) {
	pdf.SetFont("Helvetica", s.variant, s.size)
	pdf.SetTextColor(s.r, s.g, s.b)
}
