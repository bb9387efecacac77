// vex2pdf converts CycloneDX VEX/BOM documents (JSON or XML) into PDF
// reports. Pointed at a directory it converts every recognized file one level
// deep; pointed at a single file it converts just that one.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/sbomkit/vex2pdf/internal/config"
	"github.com/sbomkit/vex2pdf/internal/log"
	"github.com/sbomkit/vex2pdf/internal/model"
	"github.com/sbomkit/vex2pdf/internal/proc"
)

var (
	cfg        config.Config
	configPath string // config file actually loaded, if any

	flagConfigFilePath string
	flagVerbose        bool
	flagOutputDir      string
	flagMaxJobs        int
	flagReportTitle    string
	flagPDFMetaName    string
	flagBOMNoVulns     bool
	flagShowComponents bool
	flagShowNoVulns    bool
)

func main() {
	rootCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "d", "", "directory to place generated PDFs in (default: alongside each input)")
	rootCmd.Flags().IntVarP(&flagMaxJobs, "max-jobs", "j", 0, "concurrent conversions: 0 = all CPUs, 1 = sequential")
	rootCmd.Flags().StringVarP(&flagReportTitle, "report-title", "t", "", "title printed on the report")
	rootCmd.Flags().StringVarP(&flagPDFMetaName, "pdf-meta-name", "n", "", "title stored in the PDF metadata")
	rootCmd.Flags().BoolVarP(&flagBOMNoVulns, "bom-novulns", "b", false, "render a pure BOM report without the vulnerabilities section")
	rootCmd.Flags().BoolVar(&flagShowComponents, "show-components", true, "include the component list in the report")
	rootCmd.Flags().BoolVarP(&flagShowNoVulns, "show-novulns-msg", "m", true, "print a banner when a document has no vulnerabilities")
	rootCmd.PersistentFlags().StringVar(&flagConfigFilePath, "config", "", "YAML config file to load")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")

	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = initConfig
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("vex2pdf failed", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "vex2pdf [FILE_OR_DIR]",
	Short:        "Convert CycloneDX VEX/BOM documents to PDF reports",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         doConvert,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version provides the version of vex2pdf",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("vex2pdf: version info not available")
			return
		}

		if configPath != "" {
			fmt.Printf("config:  %s\n", configPath)
		}
		fmt.Printf("vex2pdf: %s\n", info.Main.Version)
		fmt.Printf("go:      %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				fmt.Printf("commit:  %s\n", s.Value)
			case "vcs.time":
				fmt.Printf("date:    %s\n", s.Value)
			case "vcs.modified":
				fmt.Printf("dirty:   %s\n", s.Value)
			}
		}
		fmt.Println()
	},
}

func doConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 1 {
		cfg.WorkingPath = args[0]
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	version := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		version = info.Main.Version
	}
	slog.InfoContext(ctx, "vex2pdf", "version", version, "path", cfg.WorkingPath)
	if cfg.ReportTitle != "" {
		slog.InfoContext(ctx, "using custom report title", "title", cfg.ReportTitle)
	}
	if !cfg.ProcessKinds[model.KindJSON] || !cfg.ProcessKinds[model.KindXML] {
		slog.InfoContext(ctx, "partial processing active",
			"json", cfg.ProcessKinds[model.KindJSON],
			"xml", cfg.ProcessKinds[model.KindXML])
	}

	batch, err := proc.New(&cfg).FindFiles(ctx)
	if err != nil {
		return err
	}
	return batch.Process(ctx)
}

// initConfig resolves the configuration with the precedence CLI flag >
// environment variable > config file > default, then installs the logger.
func initConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.FromEnv()
	if err != nil {
		return err
	}

	if flagConfigFilePath != "" {
		f, err := os.Open(flagConfigFilePath)
		if err != nil {
			return fmt.Errorf("opening config file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		if err := cfg.ApplyFile(f); err != nil {
			return err
		}
		configPath = flagConfigFilePath
	}

	flags := rootCmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("max-jobs") {
		if flagMaxJobs < 0 {
			return fmt.Errorf("invalid --max-jobs value %d", flagMaxJobs)
		}
		cfg.MaxJobs = flagMaxJobs
	}
	if flags.Changed("report-title") {
		cfg.ReportTitle = flagReportTitle
	}
	if flags.Changed("pdf-meta-name") {
		cfg.PDFMetaName = flagPDFMetaName
	}
	if flags.Changed("bom-novulns") {
		cfg.PureBOMNoVulns = flagBOMNoVulns
	}
	if flags.Changed("show-components") {
		cfg.ShowComponents = flagShowComponents
	}
	if flags.Changed("show-novulns-msg") {
		cfg.ShowNoVulnsMsg = flagShowNoVulns
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	logger, err := log.New(cfg.Verbose, cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	slog.Debug("vex2pdf run", "configPath", configPath)
	return nil
}
