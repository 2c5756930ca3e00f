// Package prompt collects drop parameters from an interactive console.
// Invalid answers are reported and asked again without limit.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ja7ad/bouncy/pkg/bounce"
)

const (
	QuestionHeight    = "At what height (h) is the ball dropped from in metres, where 0 < h: "
	QuestionHeightMin = "What is the minimum height of interest (height_min) in metres, where 0 < height_min < h: "
	QuestionEta       = "What is the bounce efficiency (eta), where 0 < eta < 1: "
	QuestionPlot      = "Would you like this plotted? (Y/N): "
)

// Field describes one numeric answer: how to ask for it and how to complain.
type Field struct {
	Name      string
	Question  string
	NotNumber string
	OutRange  string
}

var (
	HeightField = Field{
		Name:      "height",
		Question:  QuestionHeight,
		NotNumber: "h must be a number",
		OutRange:  "h must be greater than 0",
	}
	HeightMinField = Field{
		Name:      "height_min",
		Question:  QuestionHeightMin,
		NotNumber: "height_min must be a number",
		OutRange:  "height_min must be greater than 0 and less than h",
	}
	EtaField = Field{
		Name:      "eta",
		Question:  QuestionEta,
		NotNumber: "eta must be a number",
		OutRange:  "eta must be greater than 0 and less than one",
	}
)

// Prompter asks questions on out and reads one answer per line from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	log *slog.Logger
}

// New creates a Prompter. A nil logger falls back to slog.Default().
func New(in io.Reader, out io.Writer, log *slog.Logger) *Prompter {
	if log == nil {
		log = slog.Default()
	}
	return &Prompter{in: bufio.NewReader(in), out: out, log: log}
}

// line reads one answer without its line terminator. A final unterminated
// line is returned as is; only an empty read at end of input is io.EOF.
func (p *Prompter) line() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			err = nil
		} else {
			return "", err
		}
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// Float asks f.Question until the answer parses and passes check.
// check returns bounce.ErrNotNumber for non-finite values and any other error
// for a value out of range.
func (p *Prompter) Float(f Field, check func(float64) error) (float64, error) {
	for attempt := 1; ; attempt++ {
		if _, err := io.WriteString(p.out, f.Question); err != nil {
			return 0, err
		}
		ans, err := p.line()
		if err != nil {
			return 0, fmt.Errorf("prompt %s: %w", f.Name, err)
		}

		v, err := bounce.ParseFloat(ans)
		if err == nil && check != nil {
			err = check(v)
		}
		if err == nil {
			return v, nil
		}

		msg := f.OutRange
		if errors.Is(err, bounce.ErrNotNumber) {
			msg = f.NotNumber
		}
		p.log.Debug("rejected answer", "field", f.Name, "attempt", attempt, "input", ans, "err", err)
		if _, err := fmt.Fprintln(p.out, msg); err != nil {
			return 0, err
		}
	}
}

func (p *Prompter) Height() (float64, error) {
	return p.Float(HeightField, bounce.ValidateHeight)
}

func (p *Prompter) HeightMin(height float64) (float64, error) {
	return p.Float(HeightMinField, func(v float64) error {
		return bounce.ValidateHeightMin(v, height)
	})
}

func (p *Prompter) Eta() (float64, error) {
	return p.Float(EtaField, bounce.ValidateEta)
}

// Preset carries answers already known from flags or requests. A nil field
// is asked for.
type Preset struct {
	Height    *float64
	HeightMin *float64
	Eta       *float64
}

// Params asks for height, then height_min, then eta, skipping preset values.
// Preset values are validated but never re-asked.
func (p *Prompter) Params(pre Preset) (bounce.Params, error) {
	var (
		out bounce.Params
		err error
	)

	if pre.Height != nil {
		if err := bounce.ValidateHeight(*pre.Height); err != nil {
			return out, fmt.Errorf("height %v: %w", *pre.Height, err)
		}
		out.Height = *pre.Height
	} else if out.Height, err = p.Height(); err != nil {
		return out, err
	}

	if pre.HeightMin != nil {
		if err := bounce.ValidateHeightMin(*pre.HeightMin, out.Height); err != nil {
			return out, fmt.Errorf("height_min %v: %w", *pre.HeightMin, err)
		}
		out.HeightMin = *pre.HeightMin
	} else if out.HeightMin, err = p.HeightMin(out.Height); err != nil {
		return out, err
	}

	if pre.Eta != nil {
		if err := bounce.ValidateEta(*pre.Eta); err != nil {
			return out, fmt.Errorf("eta %v: %w", *pre.Eta, err)
		}
		out.Eta = *pre.Eta
	} else if out.Eta, err = p.Eta(); err != nil {
		return out, err
	}

	return out, nil
}

// Confirm asks question once and reports whether the answer is exactly "Y" or "y".
func (p *Prompter) Confirm(question string) (bool, error) {
	if _, err := io.WriteString(p.out, question); err != nil {
		return false, err
	}
	ans, err := p.line()
	if err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return ans == "Y" || ans == "y", nil
}
