package value

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// Port is the unified I/O abstraction for files, TCP and HTTP addressed by
// a scheme (file://, tcp://, http://, https://) with a pluggable driver per
// scheme. It is intentionally out of the evaluator's core: natives own
// port creation and the scheme drivers; the evaluator only ever sees it as
// an opaque core.Value flowing through argument cells.
type Port struct {
	Scheme  string
	Spec    string
	Driver  PortDriver
	State   PortState
	Timeout *time.Duration
}

// PortState tracks a port's lifecycle.
type PortState int

const (
	PortClosed PortState = iota
	PortOpen
	PortError
)

func (s PortState) String() string {
	switch s {
	case PortClosed:
		return "closed"
	case PortOpen:
		return "open"
	case PortError:
		return "error"
	default:
		return "unknown"
	}
}

// PortDriver is what a scheme implementation (file, tcp, http) provides.
type PortDriver interface {
	Open(ctx context.Context, spec string) error
	Read(buf []byte) (int, error)
	Write(buf []byte) (int, error)
	Close() error
	Query() (map[string]interface{}, error)
}

// NewPort creates a closed Port for the given scheme/spec.
func NewPort(scheme, spec string, driver PortDriver) *Port {
	return &Port{Scheme: scheme, Spec: spec, Driver: driver, State: PortClosed}
}

func (p *Port) GetType() core.ValueType { return core.TypePort }
func (p *Port) GetPayload() any         { return p }

func (p *Port) String() string {
	if p == nil {
		return "port[closed]"
	}
	return fmt.Sprintf("port[%s %s %s]", p.Scheme, p.State, p.Spec)
}

func (p *Port) Equals(other core.Value) bool {
	op, ok := other.(*Port)
	return ok && op == p
}

// PortVal wraps a Port as a core.Value.
func PortVal(port *Port) core.Value { return port }

// AsPort extracts the Port from a Value.
func AsPort(v core.Value) (*Port, bool) {
	p, ok := v.(*Port)
	return p, ok
}

var _ io.ReadWriteCloser = (*PortAdapter)(nil)

// PortAdapter adapts a Port to io.ReadWriteCloser so scheme-agnostic code
// (e.g. the trace/repl layers) can treat an open port like any other
// stream.
type PortAdapter struct{ Port *Port }

func (a *PortAdapter) Read(p []byte) (int, error) {
	if a.Port.Driver == nil {
		return 0, fmt.Errorf("port driver not initialized")
	}
	return a.Port.Driver.Read(p)
}

func (a *PortAdapter) Write(p []byte) (int, error) {
	if a.Port.Driver == nil {
		return 0, fmt.Errorf("port driver not initialized")
	}
	return a.Port.Driver.Write(p)
}

func (a *PortAdapter) Close() error {
	if a.Port.Driver == nil {
		return fmt.Errorf("port driver not initialized")
	}
	return a.Port.Driver.Close()
}
