// Command rdsgo decodes RDS and RDS2 from MPX audio, raw serial bitstreams,
// RDS Spy hex groups, or TEF6686 tuner output, and prints each decoded group
// as JSON or hex, per spec.md §6.
//
// Grounded on original_source/src/main.cc's top-level wiring of Options,
// MPXReader/AsciiBitReader/readHexGroup/readTEFGroup, one Channel per
// configured audio channel, and printAsHex/printAsJson.
package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/windytan-exercise/rdsgo/internal/rds"
	"github.com/windytan-exercise/rdsgo/internal/rds/channel"
	"github.com/windytan-exercise/rdsgo/internal/rds/dsp"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/ioadapt"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/options"
	"github.com/windytan-exercise/rdsgo/internal/rds/tmc"
)

// runtime bundles the pieces every input mode needs to turn decoded groups
// into output lines.
type runtime struct {
	opts        options.Options
	sink        *ioadapt.Sink
	locdb       *tmc.LocationDatabase
	serviceKeys map[uint16]tmc.ServiceKey
	logger      *log.Logger
}

func main() {
	logger := log.New(os.Stderr)

	opts, err := options.Parse(os.Args[1:])
	if err != nil {
		logger.Fatal("invalid options", "err", err)
	}

	if opts.PrintVersion {
		rds.PrintVersion(false)
		return
	}

	if opts.PrintUsage {
		os.Stdout.WriteString("usage: rdsgo [options]\n")
		return
	}

	if opts.BLER && opts.OutputType == options.OutputHex {
		logger.Warn("--bler ignored for hex output")
	}

	var locdb *tmc.LocationDatabase

	if len(opts.LoctableDirs) > 0 {
		db := tmc.LoadLocationDatabase(opts.LoctableDirs[0])
		locdb = &db
	}

	var serviceKeys map[uint16]tmc.ServiceKey

	if opts.ServiceKeyFile != "" {
		keys, err := tmc.LoadServiceKeys(opts.ServiceKeyFile)
		if err != nil {
			logger.Fatal("cannot load service key file", "err", err)
		}

		serviceKeys = keys
	}

	// With feed-through, stdout carries the echoed input; decoded output
	// moves to stderr.
	var output io.Writer = os.Stdout
	if opts.FeedThru {
		output = os.Stderr
	}

	sink, err := ioadapt.NewSink(output, opts.Timestamp, opts.TimeFormat, opts.TimeFromStart)
	if err != nil {
		logger.Fatal("invalid timestamp format", "err", err)
	}

	rt := runtime{opts: opts, sink: sink, locdb: locdb, serviceKeys: serviceKeys, logger: logger}

	switch opts.InputType {
	case options.InputASCIIBits:
		rt.runBitstream()
	case options.InputHex:
		rt.runHexGroups()
	case options.InputTEF6686:
		rt.runTEF()
	case options.InputMPXStdin, options.InputMPXSndfile:
		rt.runMPX()
	}
}

func (rt runtime) channelOptions() channel.Options {
	return channel.Options{
		UseFEC:            rt.opts.UseFEC,
		ReportBLER:        rt.opts.BLER,
		SetRxTimestamps:   rt.opts.Timestamp,
		ShowPartial:       rt.opts.ShowPartial,
		TimeFormat:        rt.opts.TimeFormat,
		ShowStream:        rt.opts.Streams,
		ShowChannelIndex:  rt.opts.NumChannels > 1,
		ShowRaw:           rt.opts.ShowRaw,
		ShowTimeFromStart: rt.opts.TimeFromStart,
		RBDS:              rt.opts.RBDS,
	}
}

// newChannel builds a Channel wired to emit this runtime's configured
// output (JSON tree or raw hex) for every decoded group, attaching the
// loaded TMC location database to its station decoder once one exists.
func (rt runtime) newChannel(index int) *channel.Channel {
	ch := channel.New(rt.channelOptions(), index)

	if rt.opts.OutputType == options.OutputHex {
		ch.OnHexGroup = func(g *group.Group) {
			if err := rt.sink.WriteHex(g); err != nil {
				rt.logger.Error("failed writing hex output", "channel", index, "err", err)
			}
		}

		return ch
	}

	ch.OnGroup = func(tree *jsontree.Tree) {
		if d := ch.Decoder(); d != nil {
			if rt.locdb != nil {
				d.SetTMCLocationDatabase(rt.locdb)
			}

			if rt.serviceKeys != nil {
				d.SetTMCServiceKeys(rt.serviceKeys)
			}
		}

		if tree == nil || tree.IsEmpty() {
			return
		}

		if err := rt.sink.WriteJSON(tree); err != nil {
			rt.logger.Error("failed writing output", "channel", index, "err", err)
		}
	}

	return ch
}

func (rt runtime) feedThruWriter() io.Writer {
	if rt.opts.FeedThru {
		return os.Stdout
	}

	return nil
}

func (rt runtime) runBitstream() {
	reader := ioadapt.NewAsciiBitReader(os.Stdin, rt.feedThruWriter())
	ch := rt.newChannel(0)

	for !reader.IsEOF() {
		ch.ProcessBit(reader.ReadBit(), 0)
	}

	ch.Flush()
}

func (rt runtime) runHexGroups() {
	reader := ioadapt.NewHexGroupReader(os.Stdin, rt.feedThruWriter())
	ch := rt.newChannel(0)

	for {
		g, ok := reader.ReadGroup()
		if !ok {
			break
		}

		// Hex input already carries a complete group, not individual
		// bits: push it straight through the PI-confirmation/decode path
		// a BlockStream would otherwise have assembled.
		ch.ProcessGroup(g, g.DataStream())
	}
}

func (rt runtime) runTEF() {
	reader := ioadapt.NewTEFGroupReader(os.Stdin, rt.feedThruWriter())
	ch := rt.newChannel(0)

	for {
		g, ok := reader.ReadGroup()
		if !ok {
			break
		}

		ch.ProcessGroup(g, 0)
	}
}

func (rt runtime) runMPX() {
	var input io.Reader = os.Stdin

	if rt.opts.SndFileName != "" {
		f, err := os.Open(rt.opts.SndFileName)
		if err != nil {
			rt.logger.Fatal("cannot open input file", "err", err)
		}

		defer f.Close()

		input = f
	}

	source := ioadapt.NewMPXSource(input, rt.opts.NumChannels, rt.feedThruWriter())

	sampleRate := rt.opts.SampleRate
	if sampleRate == 0 {
		sampleRate = dsp.CanonicalSampleRate
	}

	numStreams := 1
	if rt.opts.Streams {
		numStreams = 4
	}

	channels := make([]*channel.Channel, rt.opts.NumChannels)
	resamplers := make([]*dsp.Resampler, rt.opts.NumChannels)
	subcarriers := make([]*dsp.SubcarrierSet, rt.opts.NumChannels)

	for i := range channels {
		// The resampler only runs when the input rate differs from the
		// canonical internal rate.
		if sampleRate != dsp.CanonicalSampleRate {
			resampler, err := dsp.NewResampler(sampleRate)
			if err != nil {
				rt.logger.Fatal("invalid sample rate", "err", err)
			}

			resamplers[i] = resampler
		}

		subcarriers[i] = dsp.NewSubcarrierSet(numStreams)
		channels[i] = rt.newChannel(i)
	}

	// canonicalSamples counts samples at the canonical internal rate, per
	// channel, for file-offset clocking.
	canonicalSamples := make([]int64, rt.opts.NumChannels)

	for {
		frame, ok := source.ReadFrame()
		if !ok {
			break
		}

		for i := range channels {
			canonical := frame[i : i+1]
			if resamplers[i] != nil {
				canonical = resamplers[i].Execute(frame[i])
			}

			for _, sample := range canonical {
				canonicalSamples[i]++

				for stream, bit := range subcarriers[i].ProcessSample(sample) {
					if rt.opts.TimeFromStart {
						timeFromStart := float64(canonicalSamples[i]) / dsp.CanonicalSampleRate
						channels[i].ProcessBitTimed(bit.Value == 1, stream, timeFromStart)
					} else {
						channels[i].ProcessBit(bit.Value == 1, stream)
					}
				}
			}
		}
	}

	for _, ch := range channels {
		ch.Flush()
	}
}
