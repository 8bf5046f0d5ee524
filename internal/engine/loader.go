package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"laptops/internal/logger"
)

// DefaultEncoding is the charset of the published laptop table.
const DefaultEncoding = "ISO-8859-1"

type loadOptions struct {
	encoding string
	logger   *slog.Logger
}

// LoadOption customises Load and Read.
type LoadOption func(*loadOptions)

// WithEncoding sets the IANA charset name of the input ("UTF-8", "windows-1252", ...).
func WithEncoding(name string) LoadOption {
	return func(o *loadOptions) { o.encoding = name }
}

func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// Load reads a comma separated table from path and builds an Inventory.
func Load(path string, opts ...LoadOption) (*Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	inv, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return inv, nil
}

// Read parses a header row followed by data rows from r.
func Read(r io.Reader, opts ...LoadOption) (*Inventory, error) {
	o := loadOptions{encoding: DefaultEncoding, logger: logger.WithComponent(logger.ComponentLoader)}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	// A. Decode
	dec, err := decoder(o.encoding)
	if err != nil {
		return nil, err
	}

	// B. Split into rows; the csv reader enforces the header's arity.
	// A stray quote inside an unquoted text column (13.3" screen) is kept literally.
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.LazyQuotes = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrShortHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRecord, err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedRecordError{Row: len(rows) + 1, Err: err}
		}
		rows = append(rows, row)
	}

	// C. Build
	inv, err := New(header, rows)
	if err != nil {
		return nil, err
	}

	o.logger.Info("inventory loaded",
		"records", inv.Len(),
		"distinct_prices", inv.DistinctPrices(),
		"encoding", o.encoding,
		"elapsed", time.Since(start))
	return inv, nil
}

func decoder(name string) (*encoding.Decoder, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder(), nil
}
