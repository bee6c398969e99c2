// Package sensor delivers rotation-vector samples to the orientation
// tracker.
package sensor

import (
	"context"
	"sync/atomic"
	"time"

	"fortio.org/log"
	"github.com/chewxy/math32"
)

// Sample is one rotation-vector reading: x, y, z and optionally w of a unit
// quaternion. Values may be empty when the platform delivered no payload.
type Sample struct {
	TimestampNs int64
	Values      []float32
}

// Source produces samples on a channel until its context is cancelled, then
// closes the channel.
type Source interface {
	Start(ctx context.Context) <-chan Sample
}

// SimulatorOptions configures a Simulator.
type SimulatorOptions struct {
	SampleRateHz  int
	ChannelBuffer int
}

// Simulator is a Source that sweeps yaw slowly while wobbling pitch and
// roll, standing in for a platform rotation-vector sensor.
type Simulator struct {
	opts     SimulatorOptions
	produced atomic.Uint64
	dropped  atomic.Uint64
}

// NewSimulator returns a simulator. Non-positive options fall back to 50 Hz
// and a 64-sample buffer.
func NewSimulator(opts SimulatorOptions) *Simulator {
	if opts.SampleRateHz <= 0 {
		opts.SampleRateHz = 50
	}
	if opts.ChannelBuffer <= 0 {
		opts.ChannelBuffer = 64
	}
	return &Simulator{opts: opts}
}

// Start launches the sampling goroutine. Samples are dropped, not queued,
// when the consumer falls behind.
func (s *Simulator) Start(ctx context.Context) <-chan Sample {
	out := make(chan Sample, s.opts.ChannelBuffer)
	go s.run(ctx, out)
	log.Infof("sensor simulator started (rate=%dHz, buffer=%d)", s.opts.SampleRateHz, s.opts.ChannelBuffer)
	return out
}

func (s *Simulator) run(ctx context.Context, out chan<- Sample) {
	defer close(out)

	ticker := time.NewTicker(time.Second / time.Duration(s.opts.SampleRateHz))
	defer ticker.Stop()

	var step float32
	for {
		select {
		case <-ctx.Done():
			log.Infof("sensor simulator stopped (produced=%d, dropped=%d)", s.produced.Load(), s.dropped.Load())
			return
		case <-ticker.C:
			smp := Sample{TimestampNs: time.Now().UnixNano(), Values: SimulatedVector(step)}
			step += 1 / float32(s.opts.SampleRateHz)
			select {
			case out <- smp:
				s.produced.Add(1)
			default:
				s.dropped.Add(1)
			}
		}
	}
}

// Stats returns the produced and dropped sample counts.
func (s *Simulator) Stats() (produced, dropped uint64) {
	return s.produced.Load(), s.dropped.Load()
}

// SimulatedVector returns the unit quaternion (x, y, z, w) the simulator
// emits t seconds after starting.
func SimulatedVector(t float32) []float32 {
	yaw := 0.5 * t
	pitch := 0.15 * math32.Sin(0.7*t)
	roll := 0.1 * math32.Cos(0.9*t)

	cy, sy := math32.Cos(yaw/2), math32.Sin(yaw/2)
	cp, sp := math32.Cos(pitch/2), math32.Sin(pitch/2)
	cr, sr := math32.Cos(roll/2), math32.Sin(roll/2)

	// Z (yaw), then X (pitch), then Y (roll).
	w := cy*cp*cr - sy*sp*sr
	x := cy*sp*cr - sy*cp*sr
	y := cy*cp*sr + sy*sp*cr
	z := sy*cp*cr + cy*sp*sr
	return []float32{x, y, z, w}
}
