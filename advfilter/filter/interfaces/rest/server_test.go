package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/catalog"
)

// Wednesday.
var fixedNow = time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)

func newTestServer() http.Handler {
	s := NewServer(
		catalog.Default(),
		WithNow(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return s.Router()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListEntities(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/filters/entities", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entities":["booking","business","deal","opportunity"]}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get("X-Request-Id"))
	assert.NoError(t, err)
}

func TestListFields(t *testing.T) {
	h := newTestServer()

	t.Run("known entity", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/filters/entities/business/fields", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Entity string `json:"entity"`
			Fields []struct {
				Key       string `json:"key"`
				Type      string `json:"type"`
				Operators []struct {
					Operator string `json:"operator"`
				} `json:"operators"`
			} `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "business", body.Entity)
		require.NotEmpty(t, body.Fields)
		for _, f := range body.Fields {
			if f.Type == "boolean" {
				assert.Len(t, f.Operators, 2, f.Key)
			}
		}
	})
	t.Run("unknown entity", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/filters/entities/lead/fields", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not Found","message":"unknown entity \"lead\""}`, rec.Body.String())
	})
}

func TestListOperators(t *testing.T) {
	h := newTestServer()

	rec := do(t, h, http.MethodGet, "/filters/operators?type=boolean", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"type":"boolean","operators":[
		{"operator":"equals","label":"Equals"},
		{"operator":"notEquals","label":"Does not equal"}
	]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/filters/operators?type=geo", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPresets(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/filters/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Presets []struct {
			Token string    `json:"token"`
			Date  time.Time `json:"date"`
		} `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Presets, 9)
	assert.Equal(t, "today", body.Presets[0].Token)
	assert.True(t, body.Presets[0].Date.Equal(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)))
}

func whereURL(rules string, extra ...string) string {
	q := url.Values{}
	q.Set("rules", rules)
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	return "/filters/where?" + q.Encode()
}

func TestBuildWhere(t *testing.T) {
	h := newTestServer()
	endToEnd := `[
		{"field":"tier","operator":"equals","value":"1","conjunction":"AND"},
		{"field":"createdAt","operator":"gte","value":"this_month","conjunction":"AND"}
	]`

	cases := []struct {
		name   string
		target string
		code   int
		body   string
	}{
		{
			name:   "end to end",
			target: whereURL(endToEnd),
			code:   http.StatusOK,
			body:   `{"where":{"AND":[{"tier":1},{"createdAt":{"gte":"2024-05-01T00:00:00Z"}}]}}`,
		},
		{
			name:   "malformed rules match everything",
			target: whereURL(`[{"field":`),
			code:   http.StatusOK,
			body:   `{"where":{}}`,
		},
		{
			name:   "relation null check",
			target: whereURL(`[{"field":"owner.name","operator":"isNull"}]`),
			code:   http.StatusOK,
			body:   `{"where":{"OR":[{"owner":null},{"owner":{"name":null}}]}}`,
		},
		{
			name:   "not a number bound",
			target: whereURL(`[{"field":"price","operator":"gt","value":"cheap"}]`),
			code:   http.StatusUnprocessableEntity,
		},
		{
			name:   "rules checked against an entity",
			target: whereURL(`[{"field":"isFlagged","operator":"contains","value":"x"}]`, "entity", "business"),
			code:   http.StatusBadRequest,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, c.target, "")
			require.Equal(t, c.code, rec.Code, rec.Body.String())
			if c.body != "" {
				assert.JSONEq(t, c.body, rec.Body.String())
			}
		})
	}
}

func TestApplyFilters(t *testing.T) {
	h := newTestServer()
	records := `[
		{"name":"Acme","tier":1,"createdAt":"2024-05-02T09:00:00Z","owner":{"name":"Ann"}},
		{"name":"Globex","tier":2,"createdAt":"2024-05-03T09:00:00Z","owner":null},
		{"name":"Initech","tier":1,"createdAt":"2024-04-20T09:00:00Z","owner":{"name":""}}
	]`

	cases := []struct {
		name  string
		body  string
		code  int
		names []string
	}{
		{
			name:  "rules as array",
			body:  `{"records":` + records + `,"rules":[{"field":"tier","operator":"equals","value":"1","conjunction":"AND"},{"field":"createdAt","operator":"gte","value":"this_month","conjunction":"AND"}]}`,
			code:  http.StatusOK,
			names: []string{"Acme"},
		},
		{
			name:  "rules as string",
			body:  `{"records":` + records + `,"rules":"[{\"field\":\"owner.name\",\"operator\":\"isNull\"}]"}`,
			code:  http.StatusOK,
			names: []string{"Globex", "Initech"},
		},
		{
			name:  "malformed rules pass everything",
			body:  `{"records":` + records + `,"rules":"[{"}`,
			code:  http.StatusOK,
			names: []string{"Acme", "Globex", "Initech"},
		},
		{
			name: "missing records",
			body: `{"rules":[]}`,
			code: http.StatusBadRequest,
		},
		{
			name: "undecodable body",
			body: `{"records":`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown entity",
			body: `{"records":[],"rules":[],"entity":"lead"}`,
			code: http.StatusBadRequest,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/filters/apply", c.body)
			require.Equal(t, c.code, rec.Code, rec.Body.String())
			if c.code != http.StatusOK {
				return
			}
			var body struct {
				Records []map[string]any `json:"records"`
				Count   int              `json:"count"`
				Total   int              `json:"total"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			names := make([]string, 0, len(body.Records))
			for _, r := range body.Records {
				names = append(names, r["name"].(string))
			}
			assert.Equal(t, c.names, names)
			assert.Equal(t, len(c.names), body.Count)
			assert.Equal(t, 3, body.Total)
		})
	}
}
