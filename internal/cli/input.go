package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errEndOfInput ends the session when the input stream is exhausted.
var errEndOfInput = errors.New("end of input")

// bounds limits an integer prompt; a nil end is unbounded.
type bounds struct {
	min, max *int
}

func between(lo, hi int) bounds { return bounds{min: &lo, max: &hi} }

var unbounded = bounds{}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// readInt asks until the answer is an integer within b, printing the reason
// for every rejected answer.
func (p *prompter) readInt(prompt string, b bounds) (int, error) {
	for {
		fmt.Fprint(p.out, prompt)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, err
			}
			return 0, errEndOfInput
		}

		v, err := strconv.Atoi(strings.TrimSpace(p.in.Text()))
		switch {
		case err != nil:
			fmt.Fprintln(p.out, "Invalid input. Enter an integer.")
		case b.min != nil && v < *b.min:
			fmt.Fprintf(p.out, "Minimum value is %d.\n", *b.min)
		case b.max != nil && v > *b.max:
			fmt.Fprintf(p.out, "Maximum value is %d.\n", *b.max)
		default:
			return v, nil
		}
	}
}
