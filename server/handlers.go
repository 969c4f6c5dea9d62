package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"

	"github.com/spektr-org/socialdash/engine"
	"github.com/spektr-org/socialdash/render"
	"github.com/spektr-org/socialdash/schema"
)

// Query parameters for the three filters and the theme.
const (
	paramGender = "gender"
	paramLevel  = "level"
	paramStatus = "status"
	paramTheme  = "theme"
	paramFormat = "format"
)

// ============================================================================
// SELECTION PARSING
// ============================================================================

// parseSelection reads the filters from a query string.
//
// An absent parameter selects every label in the dataset (the dashboard's
// initial state). A present parameter selects exactly the listed labels;
// values may be repeated or comma separated, and blanks are dropped, so
// "?gender=" selects no gender at all.
func (a *App) parseSelection(q url.Values) engine.Selection {
	pick := func(param, dimension string) []string {
		vals, present := q[param]
		if !present {
			return a.dataset.Labels(dimension)
		}
		out := []string{}
		for _, v := range vals {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		return out
	}
	return engine.Selection{
		Genders:  pick(paramGender, schema.Gender),
		Levels:   pick(paramLevel, schema.AcademicLevel),
		Statuses: pick(paramStatus, schema.RelationshipState),
	}
}

func (a *App) apply(r *http.Request, opts ...engine.Option) (*engine.Result, error) {
	q := r.URL.Query()
	theme := a.config.Theme
	if t := q.Get(paramTheme); t != "" {
		theme = t
	}
	opts = append([]engine.Option{
		engine.WithTheme(theme),
		engine.WithHistogramBins(a.config.HistogramBins),
	}, opts...)
	return engine.Apply(a.dataset, a.parseSelection(q), opts...)
}

// ============================================================================
// API HANDLERS
// ============================================================================

type optionsResponse struct {
	Filters      []filterOption `json:"filters"`
	Themes       []string       `json:"themes"`
	DefaultTheme string         `json:"defaultTheme"`
	Rows         int            `json:"rows"`
}

type filterOption struct {
	Param     string   `json:"param"`
	Dimension string   `json:"dimension"`
	Label     string   `json:"label"`
	Values    []string `json:"values"`
}

func (a *App) filterOptions() []filterOption {
	return []filterOption{
		{paramGender, schema.Gender, engine.LabelForDimension(schema.Gender), a.dataset.Labels(schema.Gender)},
		{paramLevel, schema.AcademicLevel, engine.LabelForDimension(schema.AcademicLevel), a.dataset.Labels(schema.AcademicLevel)},
		{paramStatus, schema.RelationshipState, engine.LabelForDimension(schema.RelationshipState), a.dataset.Labels(schema.RelationshipState)},
	}
}

func (a *App) handleOptions(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, optionsResponse{
		Filters:      a.filterOptions(),
		Themes:       engine.Themes(),
		DefaultTheme: a.config.Theme,
		Rows:         a.dataset.Len(),
	})
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := a.apply(r)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.log.Debug("dashboard: %d/%d rows, theme=%s", result.Matched, result.Total, result.Theme)
	a.writeJSON(w, r, result)
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := a.apply(r)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	for _, c := range result.Charts {
		if c.ID != id {
			continue
		}
		switch format := r.URL.Query().Get(paramFormat); format {
		case "", "json":
			a.writeJSON(w, r, c)
		case "csv":
			var buf bytes.Buffer
			if err := render.ChartCSV(&buf, c); err != nil {
				a.writeError(w, http.StatusInternalServerError, err)
				return
			}
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.csv"`)
			w.Write(buf.Bytes())
		default:
			a.writeError(w, http.StatusBadRequest, errUnknownFormat(format))
		}
		return
	}
	a.writeError(w, http.StatusNotFound, errUnknownChart(id))
}

func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := a.apply(r, engine.WithoutCharts())
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := render.CSV(&buf, result); err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="socialdash.csv"`)
	w.Write(buf.Bytes())
}

func (a *App) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	result, err := a.apply(r, engine.WithoutCharts())
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := render.WriteWorkbook(&buf, result); err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="socialdash.xlsx"`)
	w.Write(buf.Bytes())
}

// ============================================================================
// RESPONSES
// ============================================================================

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type chartError string

func (e chartError) Error() string { return "unknown chart " + strconv.Quote(string(e)) }

func errUnknownChart(id string) error { return chartError(id) }

type formatError string

func (e formatError) Error() string { return "unknown format " + strconv.Quote(string(e)) }

func errUnknownFormat(f string) error { return formatError(f) }

// writeJSON sends v with a content-hash ETag and answers 304 when the client
// already holds the same body.
func (a *App) writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	etag := ETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		a.log.Error("%v", err)
	} else {
		a.log.Warn("%v", err)
	}
	body, _ := json.Marshal(errorResponse{Success: false, Error: err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// etagMatches reports whether an If-None-Match header names etag. The header
// may list several tags or be "*"; comparison is weak, so a W/ prefix is ignored.
func etagMatches(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}

// ETag returns a strong entity tag for a response body.
func ETag(body []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}
