package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/nao1215/fundboard/internal/dataset"
	"github.com/nao1215/fundboard/internal/model"
	"github.com/nao1215/fundboard/internal/money"
	"github.com/nao1215/fundboard/internal/pipeline"
	"github.com/nao1215/fundboard/internal/report"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// DefaultTitle is the page heading when none is configured.
const DefaultTitle = "Fundraising Campaigns"

// Handler serves the listing page and its JSON twin.
// It is safe for concurrent use: all listings are computed up front and
// never modified.
type Handler struct {
	mux          *http.ServeMux
	tmpl         *template.Template
	listings     map[model.Query]*model.Listing
	fingerprint  string
	defaultQuery model.Query
	title        string
	money        *money.Formatter
	logger       *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithDefaultQuery sets the state used for parameters missing from a request.
func WithDefaultQuery(q model.Query) Option {
	return func(h *Handler) {
		h.defaultQuery = q
	}
}

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(h *Handler) {
		if title != "" {
			h.title = title
		}
	}
}

// WithFormatter sets the amount formatter used on the page.
func WithFormatter(f *money.Formatter) Option {
	return func(h *Handler) {
		if f != nil {
			h.money = f
		}
	}
}

// NewHandler builds the handler for campaigns, computing the listing of
// every state before returning.
func NewHandler(ctx context.Context, campaigns []model.Campaign, opts ...Option) (*Handler, error) {
	h := &Handler{
		defaultQuery: model.DefaultQuery(),
		title:        DefaultTitle,
		money:        money.NewFormatter(money.DefaultTag),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := h.defaultQuery.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default query: %w", err)
	}

	tmpl, err := template.New("page.html.tmpl").Funcs(template.FuncMap{
		"currency": h.money.Currency,
		"number":   h.money.Number,
		"percent":  h.money.Percent,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	h.tmpl = tmpl

	queries := pipeline.AllQueries()
	results, err := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline { return pipeline.DefaultPipeline(pipeline.WithLogger(h.logger)) },
		pipeline.WithBatchLogger(h.logger),
	).ProcessBatch(ctx, campaigns, queries)
	if err != nil {
		return nil, fmt.Errorf("failed to compute listings: %w", err)
	}

	h.listings = make(map[model.Query]*model.Listing, len(queries))
	for i, q := range queries {
		h.listings[q] = results[i]
	}
	h.fingerprint = dataset.Fingerprint(campaigns)

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("GET /{$}", h.servePage)
	h.mux.HandleFunc("GET /campaigns.json", h.serveJSON)

	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	h.mux.ServeHTTP(w, r)
}

// listingFor resolves the request state and its listing.
// On failure it has already written a 400 response.
func (h *Handler) listingFor(w http.ResponseWriter, r *http.Request) (*model.Listing, bool) {
	q, err := ParseState(r.URL.Query(), h.defaultQuery)
	if err != nil {
		h.logger.Debug("bad request", "url", r.URL.String(), "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	listing, ok := h.listings[q]
	if !ok {
		// Unreachable: every valid query is precomputed.
		http.Error(w, "unknown state", http.StatusBadRequest)
		return nil, false
	}
	return listing, true
}

// notModified sets the ETag and answers 304 when the client already has it.
func (h *Handler) notModified(w http.ResponseWriter, r *http.Request, q model.Query, representation string) bool {
	etag := makeETag(h.fingerprint, q, representation)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	listing, ok := h.listingFor(w, r)
	if !ok {
		return
	}
	if h.notModified(w, r, listing.Query, "html") {
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, newPageData(h.title, listing)); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w) //nolint:errcheck // client went away
}

func (h *Handler) serveJSON(w http.ResponseWriter, r *http.Request) {
	listing, ok := h.listingFor(w, r)
	if !ok {
		return
	}
	if h.notModified(w, r, listing.Query, "json") {
		return
	}

	data, err := json.Marshal(report.NewJSONListing(listing))
	if err != nil {
		h.logger.Error("failed to encode listing", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(append(data, '\n')) //nolint:errcheck // client went away
}
