package transport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-rppg/dsp/core"
)

// Frame is one sampled camera frame for a subject: mean skin brightness
// per channel and a capture timestamp in milliseconds.
type Frame struct {
	Subject   string  `json:"subject"`
	Timestamp float64 `json:"ts"`
	R         float64 `json:"r"`
	G         float64 `json:"g"`
	B         float64 `json:"b"`
}

// Validate checks the subject and sample values.
func (f Frame) Validate() error {
	if f.Subject == "" {
		return fmt.Errorf("%w: frame without subject", core.ErrMalformedInput)
	}
	for _, v := range [...]float64{f.Timestamp, f.R, f.G, f.B} {
		if !core.IsFinite(v) {
			return fmt.Errorf("%w: non-finite value in frame for %s", core.ErrMalformedInput, f.Subject)
		}
	}
	if f.R < 0 || f.G < 0 || f.B < 0 {
		return fmt.Errorf("%w: negative sample in frame for %s", core.ErrMalformedInput, f.Subject)
	}

	return nil
}

// DecodeFrames parses a single JSON frame or a JSON array of frames and
// validates each one.
func DecodeFrames(payload []byte) ([]Frame, error) {
	payload = bytes.TrimSpace(payload)

	var frames []Frame
	if len(payload) > 0 && payload[0] == '[' {
		if err := json.Unmarshal(payload, &frames); err != nil {
			return nil, fmt.Errorf("%w: decode frames: %w", core.ErrMalformedInput, err)
		}
	} else {
		var f Frame
		if err := json.Unmarshal(payload, &f); err != nil {
			return nil, fmt.Errorf("%w: decode frame: %w", core.ErrMalformedInput, err)
		}
		frames = []Frame{f}
	}

	for _, f := range frames {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	return frames, nil
}
