package main

import (
	"log"
	"os"
	"strings"

	"filecombiner/cmd"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()
	logger := cmd.Logger()
	if err != nil {
		logger.Error("filecombiner execution failed", zap.Error(err))
		syncLogger(logger)
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
	syncLogger(logger)
}

// syncLogger flushes the logger when stderr can be synced; terminals and
// pipes on some platforms reject fsync with "invalid argument".
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
