package ssd1306flip

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// busOp is one recorded bus transfer, tagged command or data by the DC pin
// level sampled at transfer time.
type busOp struct {
	command bool
	bytes   []byte
}

// recordBus is a conn.Conn fake that records every write.
type recordBus struct {
	dc  *gpiotest.Pin
	ops []busOp
}

func (b *recordBus) String() string {
	return "recordBus"
}

func (b *recordBus) Duplex() conn.Duplex {
	return conn.Half
}

func (b *recordBus) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("recordBus: reads not supported")
	}
	p := make([]byte, len(w))
	copy(p, w)
	b.ops = append(b.ops, busOp{command: b.dc.L == gpio.Low, bytes: p})
	return nil
}

func (b *recordBus) reset() {
	b.ops = nil
}

// commands returns the concatenation of all recorded command bytes.
func (b *recordBus) commands() []byte {
	var out []byte
	for _, op := range b.ops {
		if op.command {
			out = append(out, op.bytes...)
		}
	}
	return out
}

// dataOps returns only the recorded data transfers.
func (b *recordBus) dataOps() []busOp {
	var out []busOp
	for _, op := range b.ops {
		if !op.command {
			out = append(out, op)
		}
	}
	return out
}

// lastCommand returns the bytes of the most recent command transfer.
func (b *recordBus) lastCommand() []byte {
	for i := len(b.ops) - 1; i >= 0; i-- {
		if b.ops[i].command {
			return b.ops[i].bytes
		}
	}
	return nil
}

func (b *recordBus) containsCommand(seq []byte) bool {
	return bytes.Contains(b.commands(), seq)
}

// newTestDev creates a Dev on a recording bus. The recorded ops include the
// full boot init sequence.
func newTestDev(t *testing.T, opts *Opts) (*Dev, *recordBus) {
	t.Helper()
	dc := &gpiotest.Pin{N: "DC"}
	bus := &recordBus{dc: dc}
	d, err := New(bus, dc, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return d, bus
}
