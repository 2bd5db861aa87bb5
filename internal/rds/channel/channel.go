package channel

import (
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/windytan-exercise/rdsgo/internal/rds/blocksync"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/groups"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

// Options configures a Channel's decoding behaviour, per spec.md §6's
// CLI surface (FEC on/off, BLER reporting, RX timestamping).
type Options struct {
	UseFEC          bool
	ReportBLER      bool
	SetRxTimestamps bool
	ShowPartial     bool
	// RBDS selects North American PTY names and RBDS callsign
	// back-calculation, mirroring station.cc's options_.rbds.
	RBDS bool

	// TimeFormat is the strftime pattern used to render rx_time, used
	// only when SetRxTimestamps is set.
	TimeFormat string
	// ShowStream emits the "stream" (RDS2 data stream index) field,
	// mirroring station.cc's options_.streams gate.
	ShowStream bool
	// ShowChannelIndex emits the "channel" field, set by the caller
	// once it knows more than one PCM channel is configured
	// (station.cc's options_.num_channels > 1).
	ShowChannelIndex bool
	// ShowRaw emits "raw_data", the group's hex rendering.
	ShowRaw bool
	// ShowTimeFromStart emits "time_from_start" for file-offset clocked
	// input.
	ShowTimeFromStart bool
}

// Channel represents one tuned RDS signal (a single 'FM channel', or one
// channel of a multiplex/audio-file source). It demultiplexes up to 4
// parallel RDS2 data streams into Groups and feeds them to a station
// decoder, re-creating that decoder whenever the PI code is confirmed to
// have changed underneath it.
//
// Grounded on original_source/src/channel.cc's Channel: four owned
// BlockStreams (one per data stream), a CachedPI gate before accepting a
// station change, and a BLER running average pushed into each Group
// before it reaches the decoder.
type Channel struct {
	options Options
	index   int

	cachedPI     CachedPI
	blockStreams [4]*blocksync.BlockStream
	decoder      *groups.Decoder
	blerAverage  runningAverage

	// delayedTimeOffset remembers each bit's time-from-start, one group
	// (104 bits) deep per stream, so a completed group can be stamped
	// with the offset of its first bit rather than its last.
	delayedTimeOffset [4]delayLine

	lastGroupRxTime time.Time
	timeFormatter   *strftime.Strftime

	OnGroup func(*jsontree.Tree)

	// OnHexGroup, when set, receives each group right after PI
	// confirmation instead of it being decoded: the hex output mode
	// bypasses the station decoder entirely, matching channel.cc's
	// output_type == Hex branch.
	OnHexGroup func(*group.Group)
}

// bitsPerGroup is one full RDS group: 4 blocks of 26 bits.
const bitsPerGroup = 104

// delayLine mirrors util.hh's DelayLine<float, 104>: push writes over the
// oldest slot, get reads the value pushed 104 calls ago.
type delayLine struct {
	buffer [bitsPerGroup]float64
	ptr    int
}

func (d *delayLine) push(v float64) {
	d.buffer[d.ptr] = v
	d.ptr = (d.ptr + 1) % len(d.buffer)
}

func (d *delayLine) get() float64 {
	return d.buffer[d.ptr]
}

// New returns a Channel with no station known yet; its decoder is
// created lazily once a PI code is confirmed.
func New(options Options, index int) *Channel {
	c := &Channel{options: options, index: index}

	for i := range c.blockStreams {
		c.blockStreams[i] = blocksync.NewBlockStream(blocksync.Options{UseFEC: options.UseFEC})
	}

	if options.SetRxTimestamps && options.TimeFormat != "" {
		if f, err := strftime.New(options.TimeFormat); err == nil {
			c.timeFormatter = f
		}
	}

	return c
}

// NewWithKnownPI returns a Channel pre-seeded with a known station PI,
// useful for tests and for callers that already know which station
// they're tuned to.
func NewWithKnownPI(options Options, pi uint16) *Channel {
	c := New(options, 0)
	c.cachedPI.Update(pi)
	c.cachedPI.Update(pi)
	c.decoder = groups.NewDecoder(pi, options.ShowPartial, options.RBDS)

	return c
}

// ProcessBit feeds one demodulated bit on data stream whichStream (0-3)
// into the corresponding synchronizer, emitting a decoded group via
// OnGroup whenever one completes.
func (c *Channel) ProcessBit(bit bool, whichStream int) {
	bs := c.blockStreams[whichStream]
	bs.PushBit(bit)

	if bs.HasGroupReady() {
		c.processGroup(bs.PopGroup(), whichStream)
	}
}

// ProcessBitTimed is ProcessBit for file-offset clocked input: it also
// records the bit's seconds-from-start offset, and stamps a completing
// group with the offset its *first* bit had, one group-length ago.
func (c *Channel) ProcessBitTimed(bit bool, whichStream int, timeFromStart float64) {
	bs := c.blockStreams[whichStream]
	bs.PushBit(bit)

	c.delayedTimeOffset[whichStream].push(timeFromStart)

	if bs.HasGroupReady() {
		g := bs.PopGroup()
		g.SetTimeFromStart(c.delayedTimeOffset[whichStream].get())
		c.processGroup(g, whichStream)
	}
}

// ProcessBits feeds a slice of bits (e.g. one demodulated MPX chunk) for
// stream whichStream.
func (c *Channel) ProcessBits(bitValues []bool, whichStream int) {
	for _, bit := range bitValues {
		c.ProcessBit(bit, whichStream)
	}
}

// ProcessGroup feeds an already-assembled group (e.g. from hex or TEF6686
// input, which carry whole groups rather than individual bits) straight
// through the PI-confirmation and station-decode path, on data stream
// whichStream.
func (c *Channel) ProcessGroup(g group.Group, whichStream int) {
	c.processGroup(g, whichStream)
}

func (c *Channel) processGroup(g group.Group, whichStream int) {
	if c.options.SetRxTimestamps {
		if _, has := g.RxTime(); !has {
			now := time.Now()
			if now.Before(c.lastGroupRxTime) {
				now = c.lastGroupRxTime
			}

			g.SetRxTime(now)
			c.lastGroupRxTime = now
		}
	}

	if c.options.ReportBLER {
		c.blerAverage.push(float32(g.NumErrors()) / 4)
		g.SetAverageBLER(100 * c.blerAverage.average())
	}

	if whichStream != 0 {
		g.SetVersionC()
	}

	g.SetDataStream(whichStream)

	if g.HasPI() {
		switch c.cachedPI.Update(g.PI()) {
		case PIChangeConfirmed:
			c.decoder = groups.NewDecoder(c.cachedPI.Get(), c.options.ShowPartial, c.options.RBDS)
		case PIChangeSpurious, PINoChange:
		}
	}

	if c.OnHexGroup != nil {
		c.OnHexGroup(&g)

		return
	}

	if c.decoder == nil {
		return
	}

	tree := c.decoder.Decode(&g)

	c.addEnvelopeFields(tree, &g)

	if c.OnGroup != nil {
		c.OnGroup(tree)
	}
}

// addEnvelopeFields adds the transport-level fields station.cc's
// updateAndPrint sets directly on the tree (rather than through a
// per-group-type decoder): the RDS2 data-stream index, the PCM channel
// index, BLER, the raw hex rendering, rx_time, and time_from_start. Each
// is gated by the same Options flag (or group-carried Maybe) the
// original checks.
func (c *Channel) addEnvelopeFields(tree *jsontree.Tree, g *group.Group) {
	if tree == nil {
		return
	}

	if c.options.ShowStream {
		tree.Set("stream", g.DataStream())
	}

	if c.options.ShowChannelIndex {
		tree.Set("channel", c.index)
	}

	if bler, has := g.BLER(); has {
		tree.Set("bler", int(bler+0.5))
	}

	if c.options.ShowRaw {
		tree.Set("raw_data", g.AsHex())
	}

	if c.options.SetRxTimestamps {
		if t, has := g.RxTime(); has && c.timeFormatter != nil {
			tree.Set("rx_time", c.timeFormatter.FormatString(t))
		}
	}

	if c.options.ShowTimeFromStart {
		if v, has := g.TimeFromStart(); has {
			tree.Set("time_from_start", v)
		}
	}
}

// Flush decodes any partially-received group remaining in each data
// stream's buffer, for use at end of input.
func (c *Channel) Flush() {
	for i, bs := range c.blockStreams {
		remaining := bs.FlushCurrentGroup()
		if !remaining.IsEmpty() {
			c.processGroup(remaining, i)
		}
	}
}

// SecondsSinceCarrierLost estimates how long stream 0 has been out of
// sync, assuming a steady 1187.5 bit/s RDS bitrate. Not precise enough
// for measurement, matching the original's own caveat.
func (c *Channel) SecondsSinceCarrierLost() float64 {
	const bitsPerSecond = 1187.5

	return float64(c.blockStreams[0].NumBitsSinceSyncLost()) / bitsPerSecond
}

// ResetPI discards the cached PI confirmation state, forcing the next
// three repeats to re-confirm a station.
func (c *Channel) ResetPI() {
	c.cachedPI.Reset()
}

// Decoder exposes the current station decoder (nil before any PI has
// been confirmed), for callers that want to attach a TMC location
// database once it becomes available.
func (c *Channel) Decoder() *groups.Decoder { return c.decoder }
