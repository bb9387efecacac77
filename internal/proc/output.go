package proc

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sbomkit/vex2pdf/internal/model"
)

// OutputPath derives the PDF path for an input file. With destDir empty the
// PDF lands next to the input; otherwise it goes into destDir under the
// input's stem. destDir pointing at an existing non-directory is rejected.
func OutputPath(destDir, inputPath string) (string, error) {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", &model.InvalidFileStemError{Path: inputPath}
	}

	if destDir == "" {
		return filepath.Join(filepath.Dir(inputPath), stem+".pdf"), nil
	}

	if info, err := os.Stat(destDir); err == nil && !info.IsDir() {
		return "", &model.InvalidOutputDirError{Path: destDir}
	}
	return filepath.Join(destDir, stem+".pdf"), nil
}
