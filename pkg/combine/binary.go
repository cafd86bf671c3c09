// File: pkg/combine/binary.go
package combine

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// sniffLen is how much of a file is inspected to decide whether it is binary.
const sniffLen = 512

// isBinaryFile checks if a file is likely to be binary by reading its first
// few bytes and checking for null bytes or a high ratio of non-printable
// characters. Bytes above 0x7F count as printable so latin-1 and UTF-8 text
// is not rejected.
func isBinaryFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return looksBinary(buffer[:n]), nil
}

func looksBinary(buffer []byte) bool {
	if len(buffer) == 0 {
		return false // Empty files are considered text
	}
	if bytes.IndexByte(buffer, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3
}

func isPrintable(b byte) bool {
	return b >= 32 || b == '\n' || b == '\r' || b == '\t' || b == '\f'
}
