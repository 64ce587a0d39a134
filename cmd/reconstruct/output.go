package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"golang.org/x/term"

	"github.com/Pro7ech/sss/recovery"
)

// printer writes the result of the i-th task.
type printer interface {
	Print(i int, res *recovery.Result) error
}

func newPrinter(format string, w io.Writer) (printer, error) {
	switch format {
	case "text":
		return &textPrinter{w: w, banners: isTerminal(w)}, nil
	case "json":
		return &jsonPrinter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q: must be \"text\" or \"json\"", format)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// textPrinter prints one secret per line, or labelled
// secrets when writing to a terminal.
type textPrinter struct {
	w       io.Writer
	banners bool
}

func (p *textPrinter) Print(i int, res *recovery.Result) (err error) {

	if !p.banners {
		_, err = fmt.Fprintln(p.w, res.Secret)
		return
	}

	if i > 0 {
		if _, err = fmt.Fprintln(p.w); err != nil {
			return
		}
	}

	_, err = fmt.Fprintf(p.w, "Processing Test Case %d:\nRecovered Secret: %s\n", i+1, res.Secret)

	return
}

// jsonPrinter prints one JSON object per line.
type jsonPrinter struct {
	enc *json.Encoder
}

type jsonResult struct {
	Source string   `json:"source"`
	N      int      `json:"n"`
	K      int      `json:"k"`
	Secret *big.Int `json:"secret"`
}

func (p *jsonPrinter) Print(_ int, res *recovery.Result) error {
	return p.enc.Encode(jsonResult{
		Source: res.Source,
		N:      res.Params.N,
		K:      res.Params.K,
		Secret: res.Secret,
	})
}
