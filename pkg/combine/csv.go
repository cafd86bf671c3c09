// File: pkg/combine/csv.go
package combine

import (
	"encoding/csv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// readCSV decodes and parses every row of the file at path. Rows may have
// differing field counts.
func readCSV(path string, enc encoding.Encoding, logger *zap.Logger) ([][]string, error) {
	text, err := readDecoded(path, enc, logger)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, inputErr(path, err)
	}
	return rows, nil
}

// mergeCSV writes the rows of every file to out. The first file with any
// rows is copied whole; later files lose their first row when header
// skipping is on and they have more than one row.
func mergeCSV(files []string, out *outputFile, cfg Config, enc encoding.Encoding, logger *zap.Logger) (int, error) {
	w := csv.NewWriter(out)
	w.UseCRLF = true

	merged := 0
	for _, path := range files {
		rows, err := readCSV(path, enc, logger)
		if err != nil {
			return merged, err
		}
		if len(rows) == 0 {
			logger.Debug("Skipping CSV file without rows", zap.String("filePath", path))
			continue
		}

		start := 0
		if merged > 0 && cfg.SkipCSVHeaderAfterFirst && len(rows) > 1 {
			start = 1
		}
		for _, row := range rows[start:] {
			if err := writeRow(w, out, row); err != nil {
				return merged, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return merged, outputErr(out.path, err)
		}

		merged++
		logger.Debug("Merged CSV file",
			zap.String("filePath", path),
			zap.Int("rows", len(rows)-start),
			zap.Bool("headerSkipped", start == 1))
	}
	return merged, nil
}

// writeRow writes one record. csv.Writer renders a record holding a single
// empty field as a blank line, which readers drop, so that record is
// written as a quoted empty field instead.
func writeRow(w *csv.Writer, out *outputFile, row []string) error {
	if len(row) == 1 && row[0] == "" {
		w.Flush()
		if err := w.Error(); err != nil {
			return outputErr(out.path, err)
		}
		return out.WriteString("\"\"\r\n")
	}
	if err := w.Write(row); err != nil {
		return outputErr(out.path, err)
	}
	return nil
}
