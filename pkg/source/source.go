package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/errors"
)

// Format is an input file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported input formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatXLSX}

// DetectFormat returns the format implied by a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported data file %q (want .json, .csv or .xlsx)", filepath.Base(path))
}

// Load reads the data file at path.
func Load(path string) (table.Raw, error) {
	if err := errors.ValidatePath(path); err != nil {
		return table.Raw{}, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return table.Raw{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table.Raw{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s not found", path)
		}
		return table.Raw{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes host data in the given format from r. It does not close r.
func Read(r io.Reader, format Format) (table.Raw, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r, "")
	}
	return table.Raw{}, errors.New(errors.ErrCodeUnsupported, "unsupported input format %q", format)
}

// ReadJSON decodes a [table.Raw] document from r.
func ReadJSON(r io.Reader) (table.Raw, error) {
	var raw table.Raw
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return table.Raw{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data")
	}
	return raw, nil
}

// WriteJSON encodes raw to w as indented JSON.
func WriteJSON(raw table.Raw, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
