// Command gridpath checks the path-length engine against case tables and
// answers single queries.
//
// Usage:
//
//	gridpath check [-grid F] [-cases F] [-width W] [-height H] [-cache DIR] [-metrics-addr ADDR] [-log-level L]
//	gridpath len [-grid F] sx sy gx gy
//	gridpath render [-grid F] [-out F.png] sx sy gx gy
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
)

// errFailed marks a run that completed but did not pass.
var errFailed = errors.New("check failed")

// errUsage marks bad command-line input. The flag set has already printed
// the details.
var errUsage = errors.New("usage error")

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"check", "run a case table against a grid and report every case", runCheck},
	{"len", "print the path length of one query", runLen},
	{"render", "draw the finished search of one query as a PNG", runRender},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a sub-command and maps its error to an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stderr)
		return 2
	}
	name := args[0]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		err := c.run(args[1:], stdout, stderr)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
			return 2
		case errors.Is(err, errFailed):
			return 1
		default:
			logutil.BgLogger().Error("command failed", zap.String("command", name), zap.Error(err))
			fmt.Fprintf(stderr, "gridpath %s: %v\n", name, err)
			return 1
		}
	}

	fmt.Fprintf(stderr, "gridpath: unknown command %q\n", name)
	if s := suggest(name); s != "" {
		fmt.Fprintf(stderr, "Did you mean %q?\n", s)
	}
	usage(stderr)
	return 2
}

// suggest returns the known command closest to name, or "".
func suggest(name string) string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	ranks := fuzzy.RankFindFold(name, names)
	sort.Sort(ranks)
	if len(ranks) > 0 {
		return ranks[0].Target
	}
	// fall back to the reverse match so "lenght" still finds "len"
	for _, n := range names {
		if fuzzy.MatchFold(n, name) {
			return n
		}
	}
	return ""
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: gridpath <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
}

// gridFlags are the flags shared by every sub-command that loads a grid.
type gridFlags struct {
	path          string
	width, height int
	logLevel      string
}

func (g *gridFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.path, "grid", "grid.txt", "grid file, row-major integers, 0 = obstacle")
	fs.IntVar(&g.width, "width", core.DefaultWidth, "grid width")
	fs.IntVar(&g.height, "height", core.DefaultHeight, "grid height")
	fs.StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("gridpath "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseQuery reads "sx sy gx gy" from the positional arguments.
func parseQuery(fs *flag.FlagSet) (core.Query, error) {
	if fs.NArg() != 4 {
		fmt.Fprintf(fs.Output(), "%s: expected 4 coordinates sx sy gx gy, got %d arguments\n", fs.Name(), fs.NArg())
		return core.Query{}, errUsage
	}
	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(fs.Arg(i))
		if err != nil {
			fmt.Fprintf(fs.Output(), "%s: coordinate %q is not an integer\n", fs.Name(), fs.Arg(i))
			return core.Query{}, errUsage
		}
		v[i] = n
	}
	return core.NewQuery(v[0], v[1], v[2], v[3]), nil
}
