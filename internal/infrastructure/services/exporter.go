package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sophialabs/harcleaner/internal/domain/classify"
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/infrastructure/ports"
)

// Output formats.
const (
	FormatHAR      = "har"
	FormatMLIngest = "ml-ingest"
)

// ErrUnsupportedFormat indicates an output format other than har or ml-ingest.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Encoder turns a cleaned capture into output bytes.
type Encoder interface {
	Encode(f *har.File) ([]byte, error)
}

// NormalizeFormat validates an output format name, ignoring case.
func NormalizeFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatHAR, FormatMLIngest:
		return f, nil
	case "":
		return FormatHAR, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %q or %q)", ErrUnsupportedFormat, format, FormatHAR, FormatMLIngest)
	}
}

// NewEncoder returns the encoder for format.
func NewEncoder(format string, logger ports.Logger) (Encoder, error) {
	f, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if f == FormatMLIngest {
		return &MLEncoder{logger: logger}, nil
	}
	return &HAREncoder{}, nil
}

var _ Encoder = (*HAREncoder)(nil)

// HAREncoder re-serializes the capture structure as indented JSON.
type HAREncoder struct{}

func (e *HAREncoder) Encode(f *har.File) ([]byte, error) {
	data, err := marshalIndented(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode capture: %w", err)
	}
	return data, nil
}

var _ Encoder = (*MLEncoder)(nil)

// MLEncoder flattens every entry through the classifier. Entries that fail
// classification are logged and skipped.
type MLEncoder struct {
	logger ports.Logger
}

// NewMLEncoder creates an ML encoder.
func NewMLEncoder(logger ports.Logger) *MLEncoder {
	return &MLEncoder{logger: logger}
}

func (e *MLEncoder) Encode(f *har.File) ([]byte, error) {
	data, err := marshalIndented(e.Records(f.Log.Entries))
	if err != nil {
		return nil, fmt.Errorf("failed to encode ml records: %w", err)
	}
	return data, nil
}

// Records classifies entries, skipping the ones that fail.
func (e *MLEncoder) Records(entries []*har.Entry) []classify.Record {
	records := make([]classify.Record, 0, len(entries))
	for i, entry := range entries {
		rec, err := safeClassify(entry)
		if err != nil {
			e.logger.Warn("skipping entry in ml export", "index", i, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func safeClassify(e *har.Entry) (rec classify.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classification panicked: %v", r)
		}
	}()
	return classify.Classify(e)
}

var _ har.Exporter = (*Exporter)(nil)

// Exporter encodes a capture and writes it to a path.
type Exporter struct {
	encoder Encoder
	writer  ports.FileWriter
}

// NewExporter creates an exporter from an encoder and a writer.
func NewExporter(encoder Encoder, writer ports.FileWriter) *Exporter {
	return &Exporter{encoder: encoder, writer: writer}
}

func (x *Exporter) Export(ctx context.Context, f *har.File, path string) error {
	data, err := x.encoder.Encode(f)
	if err != nil {
		return err
	}
	if err := x.writer.WriteFile(ctx, path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
