package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-rppg/dsp/core"
)

// readTrace parses a ts,r,g,b CSV. A first row that does not parse as
// numbers is treated as a header.
func readTrace(r io.Reader) (core.SampleWindow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var w core.SampleWindow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.SampleWindow{}, fmt.Errorf("%w: %w", core.ErrMalformedInput, err)
		}

		var vals [4]float64
		for i, field := range rec {
			vals[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				break
			}
		}
		if err != nil {
			if line == 1 {
				continue
			}
			return core.SampleWindow{}, fmt.Errorf("%w: line %d: %w", core.ErrMalformedInput, line, err)
		}

		w.Timestamps = append(w.Timestamps, vals[0])
		w.R = append(w.R, vals[1])
		w.G = append(w.G, vals[2])
		w.B = append(w.B, vals[3])
	}

	if err := w.Validate(); err != nil {
		return core.SampleWindow{}, err
	}

	return w, nil
}

func writeTrace(out io.Writer, w core.SampleWindow) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"ts", "r", "g", "b"}); err != nil {
		return err
	}

	for i := range w.Len() {
		rec := []string{
			strconv.FormatFloat(w.Timestamps[i], 'f', 3, 64),
			strconv.FormatFloat(w.R[i], 'f', 4, 64),
			strconv.FormatFloat(w.G[i], 'f', 4, 64),
			strconv.FormatFloat(w.B[i], 'f', 4, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
