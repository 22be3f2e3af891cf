package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"IshiGrid/internal/state"
)

// ErrUnknownFormat is returned by New for formats nobody registered.
var ErrUnknownFormat = errors.New("export: unknown format")

// Exporter encodes a Document in one output format.
type Exporter interface {
	Encode(w io.Writer, doc *Document) error
	MIMEType() string
	Extension() string
}

// Option configures an exporter.
type Option func(*Options)

// Options are shared by all exporters; each uses what applies to it.
type Options struct {
	// Scale is the output size of one grid unit: pixels for svg and png,
	// tenths of a millimetre for pdf.
	Scale float64
}

// DefaultScale matches a 1000×1400 pixel output for the 10×14 canvas.
const DefaultScale = 100

// WithScale sets the output size of one grid unit. Non-positive values keep
// the default.
func WithScale(s float64) Option {
	return func(o *Options) {
		if s > 0 {
			o.Scale = s
		}
	}
}

// Factory creates an exporter.
type Factory func(Options) Exporter

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes an exporter available under format. It panics if factory
// is nil or format is already taken.
func Register(format string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("export: Register factory is nil")
	}
	if _, dup := factories[format]; dup {
		panic("export: Register called twice for " + format)
	}
	factories[format] = factory
}

// New creates the exporter registered for format.
func New(format string, opts ...Option) (Exporter, error) {
	registryMu.RLock()
	factory, ok := factories[format]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	o := Options{Scale: DefaultScale}
	for _, opt := range opts {
		opt(&o)
	}
	return factory(o), nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Filename returns the default file name for an export in format.
func Filename(basename string, e Exporter) string {
	return basename + "." + e.Extension()
}

// Result is an encoded export ready for delivery.
type Result struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Data     []byte `json:"data"`
}

// Render builds and encodes the document for snap in one step. It fails
// with ErrNothingToExport before producing any bytes when nothing is
// eligible.
func Render(snap state.Snapshot, format, basename string, opts ...Option) (*Result, error) {
	e, err := New(format, opts...)
	if err != nil {
		return nil, err
	}
	doc, err := FromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := e.Encode(&buf, doc); err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	state.Logger().Info("exported", "format", format, "shapes", len(doc.Paths), "bytes", buf.Len())
	return &Result{
		Filename: Filename(basename, e),
		MIME:     e.MIMEType(),
		Data:     buf.Bytes(),
	}, nil
}
