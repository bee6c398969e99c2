package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fortio.org/log"
	"github.com/gorilla/websocket"
)

// RemoteOptions configures a Remote source.
type RemoteOptions struct {
	URL           string
	ChannelBuffer int
	Retry         time.Duration
}

// Remote reads JSON quaternions from a websocket, one per text message, as
// served by IMU bridges that relay a serial sensor to browsers.
type Remote struct {
	opts  RemoteOptions
	stats counters
}

// NewRemote returns a websocket source. It does not connect until Start.
func NewRemote(opts RemoteOptions) *Remote {
	if opts.ChannelBuffer <= 0 {
		opts.ChannelBuffer = 64
	}
	if opts.Retry <= 0 {
		opts.Retry = 2 * time.Second
	}
	return &Remote{opts: opts}
}

// Start dials the websocket and keeps reconnecting until ctx ends.
func (r *Remote) Start(ctx context.Context) <-chan Sample {
	out := make(chan Sample, r.opts.ChannelBuffer)
	go runReconnecting(ctx, "sensor remote", r.opts.Retry, out, r.session, &r.stats)
	return out
}

func (r *Remote) session(ctx context.Context, emit func(Sample)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, r.opts.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", r.opts.URL, err)
	}
	defer conn.Close()
	log.Infof("sensor remote: connected to %s", r.opts.URL)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read %s: %w", r.opts.URL, err)
		}
		var q Quaternion
		if err := json.Unmarshal(data, &q); err != nil {
			log.Debugf("sensor remote: %v (message %q)", err, data)
			continue
		}
		emit(Sample{TimestampNs: time.Now().UnixNano(), Values: q.Values()})
	}
}
