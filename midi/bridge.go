package midi

import (
	"errors"
	"fmt"
	"sync"

	"go-padscript/debug"
	"go-padscript/hid"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// maxPendingOutput bounds queued host output reports
const maxPendingOutput = 32

var errBridgeClosed = errors.New("midi bridge: closed")

// Bridge is a hid.Transport that carries reports as SysEx over a pair of
// MIDI ports. Input reports go out on the output port; host output reports
// arrive on the input port.
type Bridge struct {
	id   string
	send     func(msg gomidi.Message) error
	stop     func()
	closeOut func() error

	mu      sync.Mutex
	open    bool
	pending []hid.OutputReport
	dropped int
}

// NewBridge opens both ports. The bridge is configured once both are open.
func NewBridge(id string, inPort drivers.In, outPort drivers.Out) (*Bridge, error) {
	if inPort == nil || outPort == nil {
		return nil, fmt.Errorf("midi bridge %s: need both input and output ports", id)
	}

	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	br := newBridge(id, send)
	br.closeOut = outPort.Close

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		br.handle(msg)
	}, gomidi.UseSysEx())
	if err != nil {
		br.Close()
		return nil, fmt.Errorf("open input: %w", err)
	}
	br.stop = stop
	return br, nil
}

func newBridge(id string, send func(msg gomidi.Message) error) *Bridge {
	return &Bridge{
		id:   id,
		send: send,
		open: true,
	}
}

// handle queues host output reports; everything else is ignored
func (br *Bridge) handle(msg gomidi.Message) {
	var data []byte
	if !msg.GetSysEx(&data) {
		return
	}
	kind, b, err := DecodeReport(data)
	if err != nil {
		debug.Log("bridge", "%s: %v", br.id, err)
		return
	}
	if kind != KindOutput {
		return
	}

	br.mu.Lock()
	defer br.mu.Unlock()
	if len(br.pending) >= maxPendingOutput {
		br.pending = br.pending[1:]
		br.dropped++
	}
	br.pending = append(br.pending, hid.OutputReport(b))
}

func (br *Bridge) ID() string { return br.id }

// Transport interface implementation

func (br *Bridge) Configured() bool {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.open
}

func (br *Bridge) OutputReady() bool {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.open && len(br.pending) > 0
}

func (br *Bridge) ReadOutput() (hid.OutputReport, error) {
	br.mu.Lock()
	defer br.mu.Unlock()
	if !br.open {
		return hid.OutputReport{}, errBridgeClosed
	}
	if len(br.pending) == 0 {
		return hid.OutputReport{}, errors.New("midi bridge: no output report")
	}
	r := br.pending[0]
	br.pending = br.pending[1:]
	return r, nil
}

func (br *Bridge) InputReady() bool {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.open && br.send != nil
}

func (br *Bridge) WriteInput(r hid.Report) error {
	br.mu.Lock()
	send, open := br.send, br.open
	br.mu.Unlock()
	if !open {
		return errBridgeClosed
	}
	return send(gomidi.SysEx(EncodeReport(KindInput, r.Bytes())))
}

// Close stops listening, releases the output port and marks the bridge
// unconfigured. Closing twice is a no-op.
func (br *Bridge) Close() error {
	br.mu.Lock()
	br.open = false
	br.pending = nil
	stop, closeOut := br.stop, br.closeOut
	br.stop, br.closeOut = nil, nil
	br.mu.Unlock()

	if stop != nil {
		stop()
	}
	if closeOut != nil {
		if err := closeOut(); err != nil {
			return fmt.Errorf("close output %s: %w", br.id, err)
		}
	}
	return nil
}
