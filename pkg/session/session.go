// Package session is the interactive front end: it owns a file queue,
// re-renders it after every change and runs the combine engine on demand.
package session

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"filecombiner/pkg/combine"
	"filecombiner/pkg/filelist"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

const helpText = `Commands:
  add <path|dir|glob>...      queue files (duplicates are ignored)
  select <n>...               select queue positions for up/down/remove
  remove|rm [n]...            remove positions (default: selection)
  up [n]...                   move positions up (default: selection)
  down [n]...                 move positions down (default: selection)
  clear                       empty the queue
  list|ls                     show the queue
  set separator <newline|blank-line|filename|none>
  set encoding <utf-8|utf-8-sig|latin-1|ascii>
  set skip-header <true|false>
  set atomic <true|false>
  options                     show current options
  combine [output]            merge the queue into output
  help                        show this help
  quit|exit                   leave the session
`

// Session holds the state of one interactive run. Nothing is persisted.
type Session struct {
	Prompt string // Printed before each command when non-empty.

	files     *filelist.List
	selection []int
	cfg       combine.Config
	collect   combine.CollectOptions
	out       io.Writer
	logger    *zap.Logger
}

// New returns a session writing to out, starting with cfg as its options.
func New(out io.Writer, cfg combine.Config, collect combine.CollectOptions, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		files:   filelist.New(),
		cfg:     cfg,
		collect: collect,
		out:     out,
		logger:  logger,
	}
	s.files.SetObserver(s.render)
	return s
}

// Files exposes the queue.
func (s *Session) Files() *filelist.List {
	return s.files
}

// Config returns the current combine options.
func (s *Session) Config() combine.Config {
	return s.cfg
}

// Run reads commands from in until quit or end of input.
func (s *Session) Run(in io.Reader) error {
	s.status()
	scanner := bufio.NewScanner(in)
	for {
		if s.Prompt != "" {
			fmt.Fprint(s.out, s.Prompt)
		}
		if !scanner.Scan() {
			break
		}
		if quit := s.Execute(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line and reports whether the session
// should end. Errors are printed, never returned: the queue is left as it
// was so the user can fix the problem and retry.
func (s *Session) Execute(line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		s.errorf("%v", err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	cmd, args := strings.ToLower(args[0]), args[1:]
	s.logger.Debug("Session command", zap.String("command", cmd), zap.Strings("args", args))

	switch cmd {
	case "add":
		s.add(args)
	case "select", "sel":
		if sel, ok := s.positions(args); ok {
			s.selection = sel
			s.printSelection()
		}
	case "remove", "rm":
		if sel, ok := s.positionsOrSelection(args); ok {
			s.selection = nil
			s.files.Remove(sel...)
		}
	case "up":
		if sel, ok := s.positionsOrSelection(args); ok {
			s.selection = s.files.MoveUp(sel...)
			s.printSelection()
		}
	case "down":
		if sel, ok := s.positionsOrSelection(args); ok {
			s.selection = s.files.MoveDown(sel...)
			s.printSelection()
		}
	case "clear":
		s.selection = nil
		s.files.Clear()
	case "list", "ls":
		s.render(s.files.Paths())
	case "set":
		s.set(args)
	case "options":
		s.options()
	case "combine":
		s.combine(args)
	case "help", "?":
		fmt.Fprint(s.out, helpText)
	case "quit", "exit":
		return true
	default:
		s.errorf("unknown command %q (type 'help' for a list)", cmd)
	}
	return false
}

func (s *Session) add(args []string) {
	if len(args) == 0 {
		s.errorf("add needs at least one path")
		return
	}
	paths, err := combine.CollectInputs(args, s.collect, s.logger)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	added := s.files.Add(paths...)
	if skipped := len(paths) - added; skipped > 0 {
		fmt.Fprintf(s.out, "%d duplicate(s) ignored.\n", skipped)
	}
}

func (s *Session) set(args []string) {
	if len(args) != 2 {
		s.errorf("usage: set <separator|encoding|skip-header|atomic> <value>")
		return
	}
	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "separator", "sep":
		sep, err := combine.ParseSeparator(value)
		if err != nil {
			s.errorf("%v", err)
			return
		}
		s.cfg.Separator = sep
	case "encoding", "enc":
		enc, err := combine.ParseEncoding(value)
		if err != nil {
			s.errorf("%v", err)
			return
		}
		s.cfg.Encoding = enc
	case "skip-header":
		b, err := strconv.ParseBool(value)
		if err != nil {
			s.errorf("skip-header expects true or false, got %q", value)
			return
		}
		s.cfg.SkipCSVHeaderAfterFirst = b
	case "atomic":
		b, err := strconv.ParseBool(value)
		if err != nil {
			s.errorf("atomic expects true or false, got %q", value)
			return
		}
		s.cfg.Atomic = b
	default:
		s.errorf("unknown option %q", key)
		return
	}
	s.options()
}

func (s *Session) options() {
	fmt.Fprintf(s.out, "separator=%s encoding=%s skip-header=%t atomic=%t\n",
		s.cfg.Separator, s.cfg.Encoding, s.cfg.SkipCSVHeaderAfterFirst, s.cfg.Atomic)
}

func (s *Session) combine(args []string) {
	paths := s.files.Paths()
	mode := combine.DetectMode(paths)

	var output string
	switch len(args) {
	case 0:
		output = "combined" + combine.OutputExtension(mode)
	case 1:
		output = args[0]
	default:
		s.errorf("usage: combine [output]")
		return
	}

	res, err := combine.Combine(paths, output, s.cfg, s.logger)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprintf(s.out, "Files combined successfully! Saved to: %s\n", res.OutputPath)
	fmt.Fprintf(s.out, "Saved → %s\n", filepath.Base(res.OutputPath))
}

// render is the queue observer.
func (s *Session) render(paths []string) {
	for i, p := range paths {
		fmt.Fprintf(s.out, "%3d  %s\n", i+1, filepath.Base(p))
	}
	s.status()
}

func (s *Session) printSelection() {
	if len(s.selection) == 0 {
		fmt.Fprintln(s.out, "Selected: none")
		return
	}
	nums := make([]string, len(s.selection))
	for i, idx := range s.selection {
		nums[i] = strconv.Itoa(idx + 1)
	}
	fmt.Fprintf(s.out, "Selected: %s\n", strings.Join(nums, ", "))
}

func (s *Session) status() {
	if n := s.files.Len(); n > 0 {
		fmt.Fprintf(s.out, "%d file(s) queued.\n", n)
		return
	}
	fmt.Fprintln(s.out, "No files added yet.")
}

func (s *Session) errorf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "Error: "+format+"\n", args...)
}

// positions converts 1-based user positions to 0-based indices.
func (s *Session) positions(args []string) ([]int, bool) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 || n > s.files.Len() {
			s.errorf("invalid position %q (queue has %d file(s))", a, s.files.Len())
			return nil, false
		}
		out = append(out, n-1)
	}
	return out, true
}

func (s *Session) positionsOrSelection(args []string) ([]int, bool) {
	if len(args) == 0 {
		return s.selection, true
	}
	return s.positions(args)
}

// splitArgs splits a command line into words with shell quoting rules:
// single or double quotes group words and a backslash escapes one character.
func splitArgs(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("invalid command line: %w", err)
	}
	return args, nil
}
