package config

import (
	"os"
	"strings"
)

// EnvVar names every environment variable the tool reads. The names are part
// of the tool's public surface and stay stable across releases.
type EnvVar string

const (
	// EnvNoVulnsMsg controls whether a "No Vulnerabilities reported"
	// message is rendered when a document carries no vulnerabilities.
	// On by default.
	EnvNoVulnsMsg EnvVar = "VEX2PDF_NOVULNS_MSG"
	// EnvProcessJSON toggles processing of JSON documents. On by default.
	EnvProcessJSON EnvVar = "VEX2PDF_JSON"
	// EnvProcessXML toggles processing of XML documents. On by default.
	EnvProcessXML EnvVar = "VEX2PDF_XML"
	// EnvReportTitle overrides the title on the first page of the report.
	EnvReportTitle EnvVar = "VEX2PDF_REPORT_TITLE"
	// EnvPDFMetaName overrides the PDF metadata title shown by readers.
	EnvPDFMetaName EnvVar = "VEX2PDF_PDF_META_NAME"
	// EnvPureBOMNoVulns treats documents as pure bills of materials,
	// rendering only the component list. Off by default.
	EnvPureBOMNoVulns EnvVar = "VEX2PDF_PURE_BOM_NOVULNS"
	// EnvShowComponents controls the trailing component list. On by default.
	EnvShowComponents EnvVar = "VEX2PDF_SHOW_COMPONENTS"
	// EnvWorkingPath sets the file or directory to process.
	EnvWorkingPath EnvVar = "VEX2PDF_WORKING_PATH"
	// EnvOutputDir relocates generated PDFs to a directory.
	EnvOutputDir EnvVar = "VEX2PDF_OUTPUT_DIR"
	// EnvMaxJobs sets the concurrency level: 0 or unset means maximum
	// parallelism, 1 disables concurrency, N>1 runs N workers.
	EnvMaxJobs EnvVar = "VEX2PDF_MAX_JOBS"
)

func (v EnvVar) String() string {
	return string(v)
}

// Value returns the variable's value and whether it is set at all.
func (v EnvVar) Value() (string, bool) {
	return os.LookupEnv(string(v))
}

// IsOn reports whether the variable is set to a truthy value. Unset means
// off.
func (v EnvVar) IsOn() bool {
	val, ok := v.Value()
	return ok && isValueOn(val)
}

// IsOnOrUnset reports whether the variable is truthy or absent. Used for
// switches that default to on.
func (v EnvVar) IsOnOrUnset() bool {
	val, ok := v.Value()
	return !ok || isValueOn(val)
}

// Anything except the recognized off spellings counts as on.
func isValueOn(value string) bool {
	switch strings.ToLower(value) {
	case "false", "off", "no", "0":
		return false
	default:
		return true
	}
}
