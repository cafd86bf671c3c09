// File: pkg/combine/output.go
package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// outputFile is the destination of a combine operation. Writes are UTF-8
// text; they are encoded, buffered, and counted on their way to disk.
type outputFile struct {
	path    string // Final destination.
	atomic  bool   // file is a temp file to be renamed onto path.
	file    *os.File
	buf     *bufio.Writer
	counter *countingWriter
	enc     *transform.Writer
	logger  *zap.Logger
}

func createOutput(path string, enc encoding.Encoding, atomic bool, logger *zap.Logger) (*outputFile, error) {
	var (
		f   *os.File
		err error
	)
	if atomic {
		f, err = os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	} else {
		f, err = os.Create(path)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Opened output file", zap.String("file", f.Name()), zap.Bool("atomic", atomic))

	o := &outputFile{path: path, atomic: atomic, file: f, logger: logger}
	o.buf = bufio.NewWriter(f)
	o.counter = &countingWriter{w: o.buf}
	o.enc = encodingWriter(o.counter, enc)
	return o, nil
}

func (o *outputFile) Write(p []byte) (int, error) {
	return o.enc.Write(p)
}

// WriteString writes s, reporting failures as an OutputError.
func (o *outputFile) WriteString(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(o, s); err != nil {
		return outputErr(o.path, err)
	}
	return nil
}

func (o *outputFile) written() int64 {
	return o.counter.n
}

// commit flushes everything to disk and, in atomic mode, moves the temp
// file onto the destination.
func (o *outputFile) commit() error {
	err := multierr.Combine(o.enc.Close(), o.buf.Flush())
	err = multierr.Append(err, o.file.Close())
	if !o.atomic {
		return err
	}
	if err != nil {
		return multierr.Append(err, os.Remove(o.file.Name()))
	}
	if err := os.Chmod(o.file.Name(), destinationPerm(o.path)); err != nil {
		return multierr.Append(fmt.Errorf("failed to set output permissions: %w", err), os.Remove(o.file.Name()))
	}
	if err := os.Rename(o.file.Name(), o.path); err != nil {
		return multierr.Append(fmt.Errorf("failed to move output into place: %w", err), os.Remove(o.file.Name()))
	}
	return nil
}

// destinationPerm is the mode the renamed temp file should carry: that of
// the file it replaces, or 0644 for a new file. Temp files start at 0600.
func destinationPerm(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

// abort releases the output after a failure. Buffered bytes are flushed so
// the partial output matches what was written; in atomic mode the temp
// file is removed and the destination is never touched.
func (o *outputFile) abort() error {
	if o.atomic {
		return multierr.Append(o.file.Close(), os.Remove(o.file.Name()))
	}
	err := multierr.Append(o.buf.Flush(), o.file.Close())
	o.logger.Debug("Left partial output on disk", zap.String("file", o.path), zap.Int64("bytesWritten", o.counter.n))
	return err
}

// countingWriter counts bytes accepted by w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
