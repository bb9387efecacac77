// Package config holds the run configuration for the conversion pipeline.
//
// Values are resolved with the precedence CLI flag > environment variable >
// config file > default. The CLI layer applies flags on top of FromEnv; an
// optional YAML file is merged in between via ApplyFile.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sbomkit/vex2pdf/internal/model"
)

// Log destinations.
const (
	LogStderr  = "stderr"
	LogStdout  = "stdout"
	LogDiscard = "discard"
)

// Config is the shared immutable run configuration. It is populated once at
// startup and read concurrently by jobs afterwards; nothing mutates it during
// a run.
type Config struct {
	// WorkingPath is the file or directory to process. Defaults to the
	// current working directory.
	WorkingPath string
	// OutputDir relocates generated PDFs. Empty means alongside each
	// input file.
	OutputDir string
	// ProcessKinds maps each recognized kind to "process this kind".
	// A missing key means process.
	ProcessKinds map[model.Kind]bool
	// MaxJobs is the concurrency level: 0 = maximum parallelism,
	// 1 = sequential, N>1 = N workers.
	MaxJobs int

	// Report rendering options.
	ShowNoVulnsMsg bool
	PureBOMNoVulns bool
	ShowComponents bool
	ReportTitle    string // empty means default title
	PDFMetaName    string // empty means default metadata name

	Verbose bool
	Log     string // stderr | stdout | discard
}

// Default returns the configuration used when nothing is set: process
// everything in the current directory with maximum parallelism.
func Default() (Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("getting working directory: %w", err)
	}
	return Config{
		WorkingPath: cwd,
		ProcessKinds: map[model.Kind]bool{
			model.KindJSON: true,
			model.KindXML:  true,
		},
		ShowNoVulnsMsg: true,
		ShowComponents: true,
		Log:            LogStderr,
	}, nil
}

// FromEnv builds a configuration from defaults overlaid with the VEX2PDF_*
// environment variables.
func FromEnv() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if v, ok := EnvWorkingPath.Value(); ok {
		cfg.WorkingPath = v
	}
	if v, ok := EnvOutputDir.Value(); ok {
		cfg.OutputDir = v
	}
	if v, ok := EnvMaxJobs.Value(); ok {
		jobs, err := strconv.Atoi(v)
		if err != nil || jobs < 0 {
			return Config{}, fmt.Errorf("invalid %s value %q", EnvMaxJobs, v)
		}
		cfg.MaxJobs = jobs
	}

	cfg.ProcessKinds[model.KindJSON] = EnvProcessJSON.IsOnOrUnset()
	cfg.ProcessKinds[model.KindXML] = EnvProcessXML.IsOnOrUnset()
	cfg.ShowNoVulnsMsg = EnvNoVulnsMsg.IsOnOrUnset()
	cfg.ShowComponents = EnvShowComponents.IsOnOrUnset()
	cfg.PureBOMNoVulns = EnvPureBOMNoVulns.IsOn()

	if v, ok := EnvReportTitle.Value(); ok {
		cfg.ReportTitle = v
	}
	if v, ok := EnvPDFMetaName.Value(); ok {
		cfg.PDFMetaName = v
	}

	return cfg, nil
}

// fileConfig mirrors Config with pointer fields so that absent keys leave the
// current value untouched.
type fileConfig struct {
	WorkingPath    *string `yaml:"workingPath,omitempty"`
	OutputDir      *string `yaml:"outputDir,omitempty"`
	MaxJobs        *int    `yaml:"maxJobs,omitempty"`
	ProcessJSON    *bool   `yaml:"processJson,omitempty"`
	ProcessXML     *bool   `yaml:"processXml,omitempty"`
	ShowNoVulnsMsg *bool   `yaml:"showNoVulnsMsg,omitempty"`
	PureBOMNoVulns *bool   `yaml:"pureBomNoVulns,omitempty"`
	ShowComponents *bool   `yaml:"showComponents,omitempty"`
	ReportTitle    *string `yaml:"reportTitle,omitempty"`
	PDFMetaName    *string `yaml:"pdfMetaName,omitempty"`
	Verbose        *bool   `yaml:"verbose,omitempty"`
	Log            *string `yaml:"log,omitempty"`
}

// ApplyFile merges a YAML config file into c. Keys absent from the file keep
// their current values.
func (c *Config) ApplyFile(r io.Reader) error {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if fc.WorkingPath != nil {
		c.WorkingPath = *fc.WorkingPath
	}
	if fc.OutputDir != nil {
		c.OutputDir = *fc.OutputDir
	}
	if fc.MaxJobs != nil {
		c.MaxJobs = *fc.MaxJobs
	}
	if fc.ProcessJSON != nil {
		c.ProcessKinds[model.KindJSON] = *fc.ProcessJSON
	}
	if fc.ProcessXML != nil {
		c.ProcessKinds[model.KindXML] = *fc.ProcessXML
	}
	if fc.ShowNoVulnsMsg != nil {
		c.ShowNoVulnsMsg = *fc.ShowNoVulnsMsg
	}
	if fc.PureBOMNoVulns != nil {
		c.PureBOMNoVulns = *fc.PureBOMNoVulns
	}
	if fc.ShowComponents != nil {
		c.ShowComponents = *fc.ShowComponents
	}
	if fc.ReportTitle != nil {
		c.ReportTitle = *fc.ReportTitle
	}
	if fc.PDFMetaName != nil {
		c.PDFMetaName = *fc.PDFMetaName
	}
	if fc.Verbose != nil {
		c.Verbose = *fc.Verbose
	}
	if fc.Log != nil {
		c.Log = *fc.Log
	}
	return nil
}

// Normalize fixes contradictory settings instead of failing: deactivating
// every recognized kind would make the whole run a no-op, so JSON processing
// is forced back on with a warning.
func (c *Config) Normalize() {
	for _, k := range model.Kinds() {
		if c.ProcessKinds[k] {
			return
		}
	}
	slog.Warn("cannot deactivate both JSON and XML processing, defaulting to JSON")
	c.ProcessKinds[model.KindJSON] = true
}

// IgnoredKinds derives the ignore set handed to discovery: every recognized
// kind the user deactivated.
func (c *Config) IgnoredKinds() map[model.Kind]bool {
	ignored := make(map[model.Kind]bool)
	for _, k := range model.Kinds() {
		if !c.ProcessKinds[k] {
			ignored[k] = true
		}
	}
	return ignored
}

// Validate checks the user-supplied paths up front: the output directory, if
// set, must exist, be a directory, and be writable. Failing late inside a
// worker would waste a whole batch.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return nil
	}

	info, err := os.Stat(c.OutputDir)
	if err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	if !info.IsDir() {
		return &model.InvalidOutputDirError{Path: c.OutputDir}
	}

	// probe for write permission
	probe := filepath.Join(c.OutputDir, ".vex2pdf_perm_test")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("output dir is not writable: %w", err)
	}
	_ = f.Close()
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("removing permission probe file: %w", err)
	}
	return nil
}
