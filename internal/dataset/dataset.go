package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/fundboard/internal/database"
	"github.com/nao1215/fundboard/internal/model"
)

// ErrUnsupportedFormat is returned for file extensions and formats the
// loader does not know.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Format identifies a dataset encoding.
type Format string

const (
	// FormatJSON is a JSON array of campaign objects.
	FormatJSON Format = "json"
	// FormatYAML is a YAML sequence of campaign mappings.
	FormatYAML Format = "yaml"
	// FormatSQLite is a bundle written by `fundboard bundle`.
	FormatSQLite Format = "sqlite"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q (want .json, .yaml, .yml, .db or .sqlite)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// options holds loader settings.
type options struct {
	trustStored bool
	logger      *slog.Logger
}

// Option configures Load and Decode.
type Option func(*options)

// WithTrustStoredDifference keeps difference_from_goal as stored in the
// dataset instead of recomputing it. Records without the field still get
// the computed value.
func WithTrustStoredDifference(trust bool) Option {
	return func(o *options) {
		o.trustStored = trust
	}
}

// WithLogger sets the logger that receives reconciliation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads the dataset at path. An empty path loads the embedded demo
// dataset.
func Load(path string, opts ...Option) ([]model.Campaign, error) {
	return LoadContext(context.Background(), path, opts...)
}

// LoadContext is Load with a context for bundle queries.
func LoadContext(ctx context.Context, path string, opts ...Option) ([]model.Campaign, error) {
	if path == "" {
		return Decode(bytes.NewReader(defaultDataset), FormatJSON, opts...)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		return loadBundle(ctx, path, newOptions(opts))
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	campaigns, err := Decode(f, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return campaigns, nil
}

// loadBundle reads a SQLite bundle read-only.
func loadBundle(ctx context.Context, path string, o *options) ([]model.Campaign, error) {
	db, err := database.Open(path, database.ReadOnlyOptions())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	stored, err := db.LoadCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]record, len(stored))
	for i, c := range stored {
		records[i] = record{campaign: c, hasDifference: true}
	}
	return finish(records, o)
}

// Decode reads a JSON or YAML dataset from r.
// Bundles cannot be decoded from a stream; use Load.
func Decode(r io.Reader, format Format, opts ...Option) ([]model.Campaign, error) {
	o := newOptions(opts)

	var (
		records []record
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = decodeJSON(r)
	case FormatYAML:
		records, err = decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return finish(records, o)
}

// finish reconciles and validates decoded records.
func finish(records []record, o *options) ([]model.Campaign, error) {
	campaigns := make([]model.Campaign, len(records))
	for i, rec := range records {
		c := reconcile(i, rec, o)
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		campaigns[i] = c
	}
	return campaigns, nil
}

// record is a decoded campaign plus whether the source carried
// difference_from_goal.
type record struct {
	campaign      model.Campaign
	hasDifference bool
}

// rawCampaign mirrors the wire format with pointer fields so that a
// missing field can be told apart from a zero value.
type rawCampaign struct {
	Title              *string  `json:"title" yaml:"title"`
	URL                *string  `json:"url" yaml:"url"`
	AmountRaised       *float64 `json:"amount_raised" yaml:"amount_raised"`
	Goal               *float64 `json:"goal" yaml:"goal"`
	DifferenceFromGoal *float64 `json:"difference_from_goal" yaml:"difference_from_goal"`
}

// toRecord checks required fields and converts to a record.
func (r rawCampaign) toRecord(index int) (record, error) {
	missing := func(field string) error {
		return fmt.Errorf("%w: record %d: missing required field %q", model.ErrMalformedCampaign, index, field)
	}
	switch {
	case r.Title == nil:
		return record{}, missing("title")
	case r.URL == nil:
		return record{}, missing("url")
	case r.AmountRaised == nil:
		return record{}, missing("amount_raised")
	case r.Goal == nil:
		return record{}, missing("goal")
	}

	rec := record{
		campaign: model.Campaign{
			Title:        *r.Title,
			URL:          *r.URL,
			AmountRaised: *r.AmountRaised,
			Goal:         *r.Goal,
		},
	}
	if r.DifferenceFromGoal != nil {
		rec.campaign.DifferenceFromGoal = *r.DifferenceFromGoal
		rec.hasDifference = true
	}
	return rec, nil
}

// wireFields are the field names of the dataset wire format.
var wireFields = []string{"title", "url", "amount_raised", "goal", "difference_from_goal"}

// checkKeyCase rejects keys that only match a wire field when case is
// ignored; encoding/json would otherwise accept them.
func checkKeyCase(index int, obj map[string]json.RawMessage) error {
	for key := range obj {
		for _, field := range wireFields {
			if key != field && strings.EqualFold(key, field) {
				return fmt.Errorf("%w: record %d: field %q must be spelled %q", model.ErrMalformedCampaign, index, key, field)
			}
		}
	}
	return nil
}

func decodeJSON(r io.Reader) ([]record, error) {
	dec := json.NewDecoder(r)

	var items []json.RawMessage
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: dataset must be a JSON array of objects: %w", model.ErrMalformedCampaign, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: dataset must be a JSON array of objects, got null", model.ErrMalformedCampaign)
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the JSON array", model.ErrMalformedCampaign)
	}

	records := make([]record, 0, len(items))
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", model.ErrMalformedCampaign, i, err)
		}
		if err := checkKeyCase(i, obj); err != nil {
			return nil, err
		}
		var raw rawCampaign
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", model.ErrMalformedCampaign, i, err)
		}
		rec, err := raw.toRecord(i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// checkStringFields requires title and url to be YAML strings; yaml.v3
// would otherwise turn any scalar into a string.
func checkStringFields(index int, item *yaml.Node) error {
	for i := 0; i+1 < len(item.Content); i += 2 {
		key, value := item.Content[i], item.Content[i+1]
		if key.Value != "title" && key.Value != "url" {
			continue
		}
		if value.Kind != yaml.ScalarNode || value.Tag != "!!str" {
			return fmt.Errorf("%w: record %d: field %q must be a string (line %d)", model.ErrMalformedCampaign, index, key.Value, value.Line)
		}
	}
	return nil
}

func decodeYAML(r io.Reader) ([]record, error) {
	dec := yaml.NewDecoder(r)

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return []record{}, nil
		}
		return nil, fmt.Errorf("%w: invalid YAML: %w", model.ErrMalformedCampaign, err)
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, fmt.Errorf("%w: invalid YAML: %w", model.ErrMalformedCampaign, err)
	default:
		return nil, fmt.Errorf("%w: dataset must be a single YAML document (second document at line %d)", model.ErrMalformedCampaign, extra.Line)
	}

	seq := &root
	if seq.Kind == yaml.DocumentNode && len(seq.Content) > 0 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: dataset must be a YAML sequence of mappings (line %d)", model.ErrMalformedCampaign, seq.Line)
	}

	records := make([]record, 0, len(seq.Content))
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: record %d: expected a mapping (line %d)", model.ErrMalformedCampaign, i, item.Line)
		}
		if err := checkStringFields(i, item); err != nil {
			return nil, err
		}
		var raw rawCampaign
		if err := item.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", model.ErrMalformedCampaign, i, err)
		}
		rec, err := raw.toRecord(i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
