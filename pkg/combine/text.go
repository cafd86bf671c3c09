// File: pkg/combine/text.go
package combine

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// mergeText concatenates the files into out, writing the configured
// separator before every file after the first.
//
// Unless the separator is None, every file ends up terminated by a newline.
// A file that lacks one gets it from the leading newline of the following
// separator (all of them start with one), or from an extra newline after
// the last file. With SeparatorNone the output is the exact byte
// concatenation of the inputs.
func mergeText(files []string, out *outputFile, cfg Config, enc encoding.Encoding, logger *zap.Logger) (int, error) {
	unterminated := false
	for i, path := range files {
		content, err := readDecoded(path, enc, logger)
		if err != nil {
			return i, err
		}

		if i > 0 {
			sep, err := separatorText(cfg.Separator, path)
			if err != nil {
				return i, err
			}
			if unterminated && !strings.HasPrefix(sep, "\n") {
				sep = "\n" + sep
			}
			if err := out.WriteString(sep); err != nil {
				return i, err
			}
		}
		if err := out.WriteString(content); err != nil {
			return i, err
		}

		unterminated = cfg.Separator != SeparatorNone && content != "" && !strings.HasSuffix(content, "\n")
		logger.Debug("Merged text file", zap.String("filePath", path), zap.Int("chars", len(content)))
	}

	if unterminated {
		if err := out.WriteString("\n"); err != nil {
			return len(files), err
		}
	}
	return len(files), nil
}
