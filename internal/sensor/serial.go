package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"fortio.org/log"
	"go.bug.st/serial"
)

// SerialOptions configures a Serial source.
type SerialOptions struct {
	SerialPort    string
	BaudRate      int
	ChannelBuffer int
	Retry         time.Duration
}

// Serial reads "i,j,k,real" lines from an IMU on a serial port.
type Serial struct {
	opts  SerialOptions
	stats counters
}

// NewSerial returns a serial source. The port is opened by Start.
func NewSerial(opts SerialOptions) *Serial {
	if opts.BaudRate <= 0 {
		opts.BaudRate = 115200
	}
	if opts.ChannelBuffer <= 0 {
		opts.ChannelBuffer = 64
	}
	if opts.Retry <= 0 {
		opts.Retry = 5 * time.Second
	}
	return &Serial{opts: opts}
}

// Start opens the port and reopens it whenever it fails, until ctx ends.
func (s *Serial) Start(ctx context.Context) <-chan Sample {
	out := make(chan Sample, s.opts.ChannelBuffer)
	go runReconnecting(ctx, "sensor serial", s.opts.Retry, out, s.session, &s.stats)
	return out
}

func (s *Serial) session(ctx context.Context, emit func(Sample)) error {
	port, err := serial.Open(s.opts.SerialPort, &serial.Mode{BaudRate: s.opts.BaudRate})
	if err != nil {
		return fmt.Errorf("open %s: %w", s.opts.SerialPort, err)
	}
	defer port.Close()
	log.Infof("sensor serial: opened %s at %d baud", s.opts.SerialPort, s.opts.BaudRate)

	stop := context.AfterFunc(ctx, func() { port.Close() })
	defer stop()
	return readLines(port, emit)
}

// readLines emits one sample per parseable line until r fails.
func readLines(r io.Reader, emit func(Sample)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		q, err := ParseQuaternion(scanner.Text())
		if err != nil {
			log.Debugf("sensor serial: %v (line %q)", err, scanner.Text())
			continue
		}
		emit(Sample{TimestampNs: time.Now().UnixNano(), Values: q.Values()})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}
