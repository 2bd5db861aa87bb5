// Package options parses the command-line surface described in spec.md
// §6: input/output format selection, sample rate and channel count,
// FEC/BLER/RBDS/timestamp toggles, and TMC location-table directories.
//
// Grounded on original_source/src/options.cc's getOptions, reworked from
// getopt_long's long_options table into github.com/spf13/pflag's
// declarative flag registration (the pack's CLI-flag dependency; no
// example repository hand-rolls its own flag parser).
package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// InputType selects how the signal bits reach the decoder.
type InputType int

const (
	InputMPXStdin InputType = iota
	InputMPXSndfile
	InputASCIIBits
	InputHex
	InputTEF6686
)

// OutputType selects how decoded groups are rendered.
type OutputType int

const (
	OutputJSON OutputType = iota
	OutputHex
)

const (
	minimumSampleRateHz = 128000.0
	maximumSampleRateHz = 40_000_000.0
	maxNumChannels      = 32
)

// Options mirrors original_source/src/options.hh's Options struct.
type Options struct {
	RBDS           bool
	FeedThru       bool
	ShowPartial    bool
	Timestamp      bool
	BLER           bool
	ShowRaw        bool
	UseFEC         bool
	Streams        bool
	TimeFromStart  bool
	SampleRate     float64
	NumChannels    int
	InputType      InputType
	OutputType     OutputType
	LoctableDirs   []string
	ServiceKeyFile string
	SndFileName    string
	TimeFormat     string
	PrintUsage     bool
	PrintVersion   bool
	EarlyExit      bool
}

// Parse interprets argv (excluding the program name) into Options, per
// spec.md §6's flag table.
func Parse(argv []string) (Options, error) {
	opts := Options{UseFEC: true, NumChannels: 1, TimeFormat: "%Y-%m-%dT%H:%M:%S%z"}

	flags := pflag.NewFlagSet("rdsgo", pflag.ContinueOnError)
	flags.SetOutput(new(strings.Builder))

	inputBits := flags.BoolP("input-bits", "b", false, "input is ASCII bits (legacy alias for --input bits)")
	channels := flags.StringP("channels", "c", "", "number of audio channels")
	feedThru := flags.BoolP("feed-through", "e", false, "repeat the input signal to stdout")
	bler := flags.BoolP("bler", "E", false, "include block error rate in JSON output")
	file := flags.StringP("file", "f", "", "read MPX/audio from this file instead of stdin")
	inputHex := flags.BoolP("input-hex", "h", false, "input is hex groups (legacy alias for --input hex)")
	input := flags.StringP("input", "i", "", "input format: mpx, hex, bits, tef")
	loctable := flags.StringArrayP("loctable", "l", nil, "a TMC location table directory (repeatable)")
	serviceKeys := flags.String("service-keys", "", "a YAML file of TMC encryption_id -> key entries")
	output := flags.StringP("output", "o", "json", "output format: json, hex")
	showPartial := flags.BoolP("show-partial", "p", false, "show partially received PS/RT strings")
	samplerate := flags.StringP("samplerate", "r", "", "input sample rate in Hz")
	showRaw := flags.BoolP("show-raw", "R", false, "include raw group data in JSON output")
	streams := flags.BoolP("streams", "s", false, "decode RDS2 additional data streams")
	timestamp := flags.StringP("timestamp", "t", "", "add an rx_time field using this strftime format")
	rbds := flags.BoolP("rbds", "u", false, "use RBDS (US) program type names and callsigns")
	version := flags.BoolP("version", "v", false, "print version and exit")
	outputHex := flags.BoolP("output-hex", "x", false, "output raw hex groups (legacy alias for --output hex)")
	noFEC := flags.Bool("no-fec", false, "disable forward error correction")
	timeFromStart := flags.Bool("time-from-start", false, "add a seconds_from_start field")
	help := flags.BoolP("help", "", false, "print usage and exit")

	if err := flags.Parse(argv); err != nil {
		return opts, err
	}

	hasCustomInputType := false

	switch {
	case *inputBits:
		opts.InputType = InputASCIIBits
		hasCustomInputType = true
	case *inputHex:
		opts.InputType = InputHex
		hasCustomInputType = true
	case *input != "":
		hasCustomInputType = true

		switch *input {
		case "hex":
			opts.InputType = InputHex
		case "mpx":
			opts.InputType = InputMPXStdin
		case "tef":
			opts.InputType = InputTEF6686
		case "bits":
			opts.InputType = InputASCIIBits
		default:
			return opts, fmt.Errorf("unknown input format %q", *input)
		}
	}

	if *channels != "" {
		n, err := parseSI(*channels)
		if err != nil || n <= 0 || n > maxNumChannels {
			return opts, fmt.Errorf("check the number of channels")
		}

		opts.NumChannels = int(n)
	}

	opts.FeedThru = *feedThru
	opts.BLER = *bler

	if *file != "" {
		opts.SndFileName = *file
		opts.InputType = InputMPXSndfile
	}

	switch *output {
	case "hex":
		opts.OutputType = OutputHex
	case "json":
		opts.OutputType = OutputJSON
	default:
		return opts, fmt.Errorf("unknown output format %q", *output)
	}

	if *outputHex {
		opts.OutputType = OutputHex
	}

	opts.ShowPartial = *showPartial

	if *samplerate != "" {
		rate, err := parseSI(*samplerate)
		if err != nil {
			return opts, fmt.Errorf("check the sample rate parameter")
		}

		if rate < minimumSampleRateHz || rate > maximumSampleRateHz {
			return opts, fmt.Errorf("sample rate must be between %g and %g Hz", minimumSampleRateHz, maximumSampleRateHz)
		}

		opts.SampleRate = rate
	}

	opts.ShowRaw = *showRaw
	opts.Streams = *streams

	if *timestamp != "" {
		opts.Timestamp = true
		opts.TimeFormat = *timestamp
	}

	opts.RBDS = *rbds
	opts.LoctableDirs = *loctable
	opts.ServiceKeyFile = *serviceKeys
	opts.PrintVersion = *version
	opts.UseFEC = !*noFEC
	opts.TimeFromStart = *timeFromStart
	opts.PrintUsage = *help || flags.NArg() > 0
	opts.EarlyExit = opts.PrintUsage || opts.PrintVersion

	if hasCustomInputType && opts.SndFileName != "" {
		return opts, fmt.Errorf("incompatible options: --input and --file")
	}

	return opts, nil
}

// parseSI parses a number with an optional k/M SI suffix, per
// original_source/src/options.cc's parseSI.
func parseSI(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	factor := 1.0
	numeric := s

	switch s[len(s)-1] {
	case 'k', 'K':
		factor = 1000
		numeric = s[:len(s)-1]
	case 'M':
		factor = 1_000_000
		numeric = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, err
	}

	return value * factor, nil
}
