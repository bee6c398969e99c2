package sensor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fortio.org/log"
)

// Quaternion is the wire form IMU bridges publish: i, j, k and the real part.
type Quaternion struct {
	I    float64 `json:"i"`
	J    float64 `json:"j"`
	K    float64 `json:"k"`
	Real float64 `json:"real"`
}

// Values returns q as rotation-vector sample values (x, y, z, w).
func (q Quaternion) Values() []float32 {
	return []float32{float32(q.I), float32(q.J), float32(q.K), float32(q.Real)}
}

// ParseQuaternion parses a line in the form "i,j,k,real".
func ParseQuaternion(line string) (Quaternion, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 4 {
		return Quaternion{}, fmt.Errorf("expected 4 values, got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Quaternion{}, fmt.Errorf("value %d: %w", i, err)
		}
		v[i] = f
	}
	return Quaternion{I: v[0], J: v[1], K: v[2], Real: v[3]}, nil
}

// connectFunc opens one session and streams samples to emit until the
// session ends or ctx is cancelled.
type connectFunc func(ctx context.Context, emit func(Sample)) error

// counters tracks delivery for the reconnecting sources.
type counters struct {
	produced, dropped uint64
}

// runReconnecting calls connect until ctx ends, waiting retry between
// sessions. Samples that do not fit in out are dropped.
func runReconnecting(ctx context.Context, name string, retry time.Duration, out chan<- Sample, connect connectFunc, c *counters) {
	defer close(out)
	emit := func(s Sample) {
		select {
		case out <- s:
			c.produced++
		default:
			c.dropped++
		}
	}
	for {
		err := connect(ctx, emit)
		if ctx.Err() != nil {
			log.Infof("%s: stopped (produced=%d, dropped=%d)", name, c.produced, c.dropped)
			return
		}
		log.Warnf("%s: %v; retrying in %v", name, err, retry)
		t := time.NewTimer(retry)
		select {
		case <-ctx.Done():
			t.Stop()
			log.Infof("%s: stopped (produced=%d, dropped=%d)", name, c.produced, c.dropped)
			return
		case <-t.C:
		}
	}
}
