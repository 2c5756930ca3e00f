package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/ja7ad/bouncy/pkg/types"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printTableHeader(tw *tabwriter.Writer) {
	fmt.Fprintln(tw, "IMPACT\tTIME\tFROM\tSPEED (m/s)\tCLEARS h_min")
	fmt.Fprintln(tw, "------\t----\t----\t-----------\t------------")
}

// printImpacts lists every ground contact with the apex it fell from.
func printImpacts(w io.Writer, m *bounce.Model, p bounce.Params) error {
	tw := newTable(w)
	printTableHeader(tw)

	n := 0
	for _, s := range m.Segments(p) {
		if s.Kind != bounce.Fall {
			continue
		}
		n++
		above := "no"
		if s.Apex > p.HeightMin {
			above = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.3f\t%s\n",
			n, types.Seconds(s.End).Humanized(), types.Meters(s.Apex).Humanized(),
			m.ImpactSpeed(s.Apex), above,
		)
	}
	return tw.Flush()
}
