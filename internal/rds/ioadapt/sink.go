package ioadapt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lestrrat-go/strftime"

	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

// Sink renders a decoded group (as hex) or its decoded tree (as JSON) to an
// output stream, per original_source/src/io/output.cc's printAsHex/printAsJson.
type Sink struct {
	Writer        io.Writer
	Timestamp     bool
	TimeFormat    string
	TimeFromStart bool

	timeFormatter *strftime.Strftime
}

// NewSink constructs a Sink, pre-compiling the strftime timestamp pattern
// if one is configured.
func NewSink(w io.Writer, timestamp bool, timeFormat string, timeFromStart bool) (*Sink, error) {
	s := &Sink{Writer: w, Timestamp: timestamp, TimeFormat: timeFormat, TimeFromStart: timeFromStart}

	if timestamp {
		f, err := strftime.New(timeFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp format: %w", err)
		}

		s.timeFormatter = f
	}

	return s, nil
}

// WriteHex renders g the way original_source's printAsHex does: the raw
// hex group, optionally prefixed with its data-stream tag and suffixed with
// a timestamp and/or a seconds-from-start offset.
func (s *Sink) WriteHex(g *group.Group) error {
	if g.IsEmpty() {
		return nil
	}

	line := ""

	if g.DataStream() > 0 {
		line += fmt.Sprintf("#S%d ", g.DataStream())
	}

	line += g.AsHex()

	if s.Timestamp {
		if t, has := g.RxTime(); has {
			line += " " + s.timeFormatter.FormatString(t)
		}
	}

	if s.TimeFromStart {
		if v, has := g.TimeFromStart(); has {
			line += fmt.Sprintf(" %.6f", v)
		}
	}

	_, err := fmt.Fprintln(s.Writer, line)

	return err
}

// WriteJSON renders a decoded group's tree as a single line of JSON, per
// printAsJson. On a marshal error (e.g. non-UTF8 text smuggled through a
// freeform field) it falls back to emitting {"debug": "<error>"}, matching
// the original's own marshal-failure fallback.
func (s *Sink) WriteJSON(tree *jsontree.Tree) error {
	encoded, err := json.Marshal(tree)
	if err != nil {
		encoded, _ = json.Marshal(map[string]string{"debug": err.Error()})
	}

	_, err = fmt.Fprintln(s.Writer, string(encoded))

	return err
}
