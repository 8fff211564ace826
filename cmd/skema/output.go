package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// printer writes check results, colored when w is a terminal.
type printer struct {
	w                      io.Writer
	okC, warnC, failC, dim *color.Color
}

func newPrinter(w io.Writer) *printer {
	p := &printer{
		w:     w,
		okC:   color.New(color.FgGreen),
		warnC: color.New(color.FgYellow),
		failC: color.New(color.FgRed),
		dim:   color.New(color.Faint),
	}
	if !isTerminal(w) {
		for _, c := range []*color.Color{p.okC, p.warnC, p.failC, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) ok(label string)   { fmt.Fprintln(p.w, p.okC.Sprint("ok")+"   "+label) }
func (p *printer) warn(label string) { fmt.Fprintln(p.w, p.warnC.Sprint("warn")+" "+label) }
func (p *printer) fail(label string) { fmt.Fprintln(p.w, p.failC.Sprint("FAIL")+" "+label) }
func (p *printer) line(s string)     { fmt.Fprintln(p.w, s) }

// diff prints a line diff between the JSON renderings of before and after.
func (p *printer) diff(before, after any) error {
	a, err := gojson.MarshalIndent(before, "", "  ")
	if err != nil {
		return err
	}
	b, err := gojson.MarshalIndent(after, "", "  ")
	if err != nil {
		return err
	}
	for _, l := range lineDiff(string(a), string(b)) {
		switch l[0] {
		case '-':
			fmt.Fprintln(p.w, p.failC.Sprint(l))
		case '+':
			fmt.Fprintln(p.w, p.okC.Sprint(l))
		default:
			fmt.Fprintln(p.w, p.dim.Sprint(l))
		}
	}
	return nil
}

// lineDiff returns the lines of a and b prefixed with "-", "+" or " ".
func lineDiff(a, b string) []string {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a+"\n", b+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var out []string
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		}
		for _, l := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, prefix+" "+l)
		}
	}
	return out
}
