// Package fixture reads and writes the grid and test-case text files.
//
// A grid file holds width*height whitespace-separated integers, one row per
// y starting at y = 0, x increasing along the row. Zero is an obstacle, any
// other value walkable.
//
// A case file starts with a count N followed by N records
// "xs ys xd yd expected", where expected is a path length or -1 for no path.
package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// ErrMalformed is returned for input that does not follow the file format.
var ErrMalformed = errors.New("malformed fixture")

// tokens yields whitespace-separated integers and counts them for error
// messages.
type tokens struct {
	sc *bufio.Scanner
	n  int
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokens{sc: sc}
}

func (t *tokens) next(what string) (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, errors.Wrapf(err, "read %s", what)
		}
		return 0, errors.Wrapf(ErrMalformed, "unexpected end of input at token %d, want %s", t.n+1, what)
	}
	t.n++
	v, err := strconv.Atoi(t.sc.Text())
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "token %d (%s): %q is not an integer", t.n, what, t.sc.Text())
	}
	return v, nil
}

// ReadGrid parses a width x height grid. Trailing input is ignored.
func ReadGrid(r io.Reader, width, height int) (*core.Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid grid size %dx%d", width, height)
	}
	g := core.NewGrid(width, height)
	t := newTokens(r)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v, err := t.next(fmt.Sprintf("cell (%d %d)", x, y))
			if err != nil {
				return nil, err
			}
			g.Set(x, y, v != 0)
		}
	}
	return g, nil
}

// ReadCases parses a case table.
func ReadCases(r io.Reader) ([]core.Case, error) {
	t := newTokens(r)
	n, err := t.next("case count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrMalformed, "negative case count %d", n)
	}

	cases := make([]core.Case, 0, n)
	for i := 0; i < n; i++ {
		var f [5]int
		for j, name := range [...]string{"xs", "ys", "xd", "yd", "expected"} {
			if f[j], err = t.next(fmt.Sprintf("case %d %s", i+1, name)); err != nil {
				return nil, err
			}
		}
		cases = append(cases, core.Case{
			Query:    core.NewQuery(f[0], f[1], f[2], f[3]),
			Expected: f[4],
		})
	}
	return cases, nil
}

// WriteGrid writes g in the format read by ReadGrid.
func WriteGrid(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			if g.IsWalkable(x, y) {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "write grid")
}

// WriteCases writes cases in the format read by ReadCases.
func WriteCases(w io.Writer, cases []core.Case) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(cases))
	for _, c := range cases {
		fmt.Fprintf(bw, "%d %d %d %d %d\n", c.Start.X, c.Start.Y, c.Goal.X, c.Goal.Y, c.Expected)
	}
	return errors.Wrap(bw.Flush(), "write cases")
}

// LoadGrid reads a grid file.
func LoadGrid(path string, width, height int) (*core.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open grid")
	}
	defer f.Close()
	g, err := ReadGrid(f, width, height)
	return g, errors.Wrapf(err, "grid %s", path)
}

// LoadCases reads a case file.
func LoadCases(path string) ([]core.Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open cases")
	}
	defer f.Close()
	cases, err := ReadCases(f)
	return cases, errors.Wrapf(err, "cases %s", path)
}

// SaveGrid writes g to path.
func SaveGrid(path string, g *core.Grid) error {
	return save(path, func(w io.Writer) error { return WriteGrid(w, g) })
}

// SaveCases writes cases to path.
func SaveCases(path string, cases []core.Case) error {
	return save(path, func(w io.Writer) error { return WriteCases(w, cases) })
}

func save(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	return errors.Wrapf(f.Close(), "save %s", path)
}
