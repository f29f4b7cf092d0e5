package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabula/internal/paths"
	"github.com/mesh-intelligence/tabula/pkg/types"
)

const (
	shellPrompt = "tabula> "
	shellHelp   = `
Commands:
  .open <db>                     Open a database (closes the current one)
  .close                         Close the database
  .tables                        List tables
  .load <table>                  Load a snapshot of a table
  .rows                          Show the loaded snapshot again
  .set <column> <rowid> <value>  Set one cell of the loaded table
  .help                          Show this help message
  .quit / .exit                  Leave the shell

Tips:
  - <column> is a name or a position; position 0 is the rowid
  - Tab completes commands and table names
`
)

// lineReader is the part of *readline.Instance the shell uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// shell is an interactive editor over one session. It keeps its own copy
// of the loaded snapshot and patches it after each successful .set.
type shell struct {
	ctx     context.Context
	session types.Session
	out     io.Writer
	errOut  io.Writer
	format  string
	tables  []string
	snap    *types.Snapshot
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [db]",
		Short: "Browse and edit tables interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd, args)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	s, err := a.newSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	sh := &shell{
		ctx:     cmd.Context(),
		session: s,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		format:  a.format(),
	}

	historyFile := ""
	if dataDir, err := a.dataDir(); err == nil {
		if err := os.MkdirAll(dataDir, 0o755); err == nil {
			historyFile = paths.HistoryFile(dataDir)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(sh.out, "tabula shell. Type .help for commands, .quit to exit")
	if len(args) == 1 {
		if err := sh.open(args[0]); err != nil {
			sh.printErr(err)
		}
	}
	return sh.run(rl)
}

// run reads lines until EOF or .quit.
func (sh *shell) run(rl lineReader) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			rl.SetPrompt(shellPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if quit := sh.exec(line); quit {
			return nil
		}
	}
}

// exec runs one input line and reports whether the shell should exit.
// Errors are printed, never returned: the session stays usable.
func (sh *shell) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ".") {
		sh.printErr(fmt.Errorf("unknown input %q (type .help for commands)", line))
		return false
	}

	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch command {
	case ".quit", ".exit":
		return true
	case ".help":
		_, _ = fmt.Fprint(sh.out, shellHelp)
	case ".open":
		if len(args) == 0 {
			err = errors.New("usage: .open <db>")
			break
		}
		_, path := cutFields(line, 1)
		err = sh.open(path)
	case ".close":
		err = sh.close()
	case ".tables":
		err = sh.listTables()
	case ".load":
		err = sh.load(args)
	case ".rows":
		err = sh.rows()
	case ".set":
		err = sh.set(line)
	default:
		err = fmt.Errorf("unknown command %s (type .help for commands)", command)
	}
	if err != nil {
		sh.printErr(err)
	}
	return false
}

func (sh *shell) printErr(err error) {
	_, _ = fmt.Fprintf(sh.errOut, "Error: %v\n", err)
}

// open accepts the rest of the line as the path, so it may contain spaces.
func (sh *shell) open(path string) error {
	sh.snap = nil
	sh.tables = nil
	if err := openDatabase(sh.ctx, sh.session, path); err != nil {
		_ = sh.session.Close()
		return err
	}
	_, _ = fmt.Fprintf(sh.out, "Opened %s\n", path)
	return sh.listTables()
}

func (sh *shell) close() error {
	sh.snap = nil
	sh.tables = nil
	return sh.session.Close()
}

func (sh *shell) refreshTables() error {
	tables, err := sh.session.ListTables(sh.ctx)
	if err != nil {
		sh.tables = nil
		return err
	}
	sh.tables = tables
	return nil
}

func (sh *shell) listTables() error {
	if err := sh.refreshTables(); err != nil {
		return err
	}
	return renderTables(sh.out, sh.tables, sh.format)
}

func (sh *shell) load(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: .load <table>")
	}
	sh.snap = nil
	if err := requireListedTable(sh.ctx, sh.session, args[0]); err != nil {
		return err
	}
	snap, err := sh.session.LoadTable(sh.ctx, args[0])
	if err != nil {
		return err
	}
	sh.snap = &snap
	return renderSnapshot(sh.out, snap, sh.format)
}

func (sh *shell) rows() error {
	if sh.snap == nil {
		return errNoSnapshot
	}
	return renderSnapshot(sh.out, *sh.snap, sh.format)
}

// set handles ".set <column> <rowid> <value>". The value is the rest of the
// line, so it may contain spaces.
func (sh *shell) set(line string) error {
	fields, value := cutFields(line, 3)
	if len(fields) != 3 || value == "" {
		return errors.New("usage: .set <column> <rowid> <value>")
	}
	if sh.snap == nil {
		return errNoSnapshot
	}
	column, rowID := fields[1], fields[2]

	col, err := resolveColumn(*sh.snap, column)
	if err != nil {
		return err
	}
	n, err := sh.session.UpdateCellResult(sh.ctx, col, rowID, value)
	if err != nil {
		return err
	}
	if col > 0 && n > 0 {
		// The snapshot may not hold the row if the table is over the limit.
		_ = sh.snap.SetCell(rowID, col, value)
	}
	reportUpdate(sh.out, sh.errOut, *sh.snap, col, rowID, n)
	return nil
}

// cutFields splits the first n whitespace-separated fields off line and
// returns them with the trimmed remainder.
func cutFields(line string, n int) ([]string, string) {
	fields := make([]string, 0, n)
	rest := line
	for range n {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		fields = append(fields, rest[:end])
		rest = rest[end:]
	}
	return fields, strings.TrimSpace(rest)
}

// completer offers dot-commands and, after .load, the listed table names.
func (sh *shell) completer() *readline.PrefixCompleter {
	tableNames := func(string) []string { return sh.tables }
	return readline.NewPrefixCompleter(
		readline.PcItem(".open"),
		readline.PcItem(".close"),
		readline.PcItem(".tables"),
		readline.PcItem(".load", readline.PcItemDynamic(tableNames)),
		readline.PcItem(".rows"),
		readline.PcItem(".set"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
