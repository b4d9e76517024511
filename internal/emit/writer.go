// Package emit serializes outlines to the external JSON contract, one
// output file per input PDF.
package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docrill/pdfoutliner/internal/outline"
)

// Marshal renders the JSON contract deterministically: two-space indent,
// trailing newline. Running it twice on the same outline produces
// byte-identical output.
func Marshal(doc outline.Document) ([]byte, error) {
	if doc.Outline == nil {
		doc.Outline = []outline.Entry{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal outline: %w", err)
	}
	return append(data, '\n'), nil
}

// Write stores the outline for one source PDF under dir, named after the
// source file's base name with a .json extension. Returns the output path.
func Write(dir, sourceName string, doc outline.Document) (string, error) {
	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	path := filepath.Join(dir, base+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
