package combine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"filecombiner/pkg/filelist"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// DetectMode picks the merge algorithm by majority extension: CSV when
// there are strictly more .csv than .txt files, text otherwise.
func DetectMode(paths []string) Mode {
	var csvCount, txtCount int
	for _, p := range paths {
		switch filelist.Extension(p) {
		case ".csv":
			csvCount++
		case ".txt":
			txtCount++
		}
	}
	if csvCount > txtCount {
		return ModeCSV
	}
	return ModeText
}

// OutputExtension returns the default extension for files produced in mode m.
func OutputExtension(m Mode) string {
	if m == ModeCSV {
		return ".csv"
	}
	return ".txt"
}

// Combine merges files, in order, into outputPath. The algorithm is chosen
// by DetectMode. Any failure aborts the whole operation and is returned as
// an *Error; without cfg.Atomic, output written before the failure is left
// on disk.
func Combine(files []string, outputPath string, cfg Config, logger *zap.Logger) (res Result, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(files) == 0 {
		logger.Warn("Combine requested with an empty file list")
		return Result{}, &Error{Kind: EmptySelection}
	}

	enc, err := cfg.Encoding.codec()
	if err != nil {
		return Result{}, err
	}
	if _, err := separatorText(cfg.Separator, ""); err != nil {
		return Result{}, err
	}
	if outputPath == "" {
		return Result{}, &Error{Kind: OutputError, Err: fmt.Errorf("no output path given")}
	}
	if err := checkOutputNotInput(files, outputPath); err != nil {
		logger.Error("Output file is one of the inputs", zap.String("output", outputPath))
		return Result{}, err
	}

	startTime := time.Now()
	mode := DetectMode(files)
	logger.Info("Starting combine",
		zap.Int("files", len(files)),
		zap.Stringer("mode", mode),
		zap.Stringer("encoding", cfg.Encoding),
		zap.String("output", outputPath))

	out, err := createOutput(outputPath, enc, cfg.Atomic, logger)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return Result{}, outputErr(outputPath, err)
	}

	var merged int
	switch mode {
	case ModeCSV:
		merged, err = mergeCSV(files, out, cfg, enc, logger)
	case ModeText:
		merged, err = mergeText(files, out, cfg, enc, logger)
	}
	if err != nil {
		logger.Error("Combine aborted", zap.Error(err))
		if abortErr := out.abort(); abortErr != nil {
			logger.Warn("Failed to clean up output after error", zap.String("file", outputPath), zap.Error(abortErr))
		}
		return Result{}, err
	}

	if err := out.commit(); err != nil {
		logger.Error("Failed to finalize output file", zap.String("file", outputPath), zap.Error(err))
		return Result{}, outputErr(outputPath, err)
	}

	res = Result{
		OutputPath:   outputPath,
		Mode:         mode,
		FilesMerged:  merged,
		BytesWritten: out.written(),
	}
	logger.Info("Successfully combined files",
		zap.String("outputFile", outputPath),
		zap.Int("filesMerged", merged),
		zap.Int64("bytesWritten", res.BytesWritten),
		zap.Duration("elapsed", time.Since(startTime)))
	return res, nil
}

// checkOutputNotInput rejects an output path that names one of the inputs,
// either literally or through a link. Creating the output would truncate
// that input before it is read.
func checkOutputNotInput(files []string, outputPath string) error {
	outAbs, err := filepath.Abs(outputPath)
	if err != nil {
		return outputErr(outputPath, err)
	}
	outInfo, statErr := os.Stat(outputPath)
	for _, f := range files {
		same := false
		if abs, err := filepath.Abs(f); err == nil && abs == outAbs {
			same = true
		} else if statErr == nil {
			if info, err := os.Stat(f); err == nil && os.SameFile(info, outInfo) {
				same = true
			}
		}
		if same {
			return &Error{Kind: ConfigurationError, Path: outputPath, Err: fmt.Errorf("output file is also an input (%s)", f)}
		}
	}
	return nil
}

// readDecoded reads the whole file at path and decodes it with enc.
func readDecoded(path string, enc encoding.Encoding, logger *zap.Logger) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", inputErr(path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", inputErr(path, err)
	}
	text, err := decode(enc, data)
	if err != nil {
		return "", inputErr(path, err)
	}
	logger.Debug("Read input file",
		zap.String("filePath", path),
		zap.Int("contentSizeBytes", len(data)))
	return text, nil
}

// separatorText returns the bytes written before a file (other than the
// first) in text mode.
func separatorText(s Separator, path string) (string, error) {
	switch s {
	case SeparatorNewline:
		return "\n", nil
	case SeparatorBlankLine:
		return "\n\n", nil
	case SeparatorBanner:
		return fmt.Sprintf("\n\n--- %s ---\n\n", filepath.Base(path)), nil
	case SeparatorNone:
		return "", nil
	}
	return "", &Error{Kind: ConfigurationError, Err: fmt.Errorf("unsupported separator %v", s)}
}
