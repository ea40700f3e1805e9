package adapthttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// formValue accepts a JSON string or number, as a text field would send it.
// Validation happens in the service.
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = formValue(n.String())
	return nil
}

// userParam returns the decoded {name} segment.
func userParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

func (s *Server) handleRecordMeasurement(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Weight formValue `json:"weight"`
		Height formValue `json:"height"`
	}
	if err := parseJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.history.RecordMeasurement(r.Context(), userParam(r), string(body.Weight), string(body.Height))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bmi":      res.BMI,
		"category": res.Category,
		"summary":  res.String(),
		"entry":    res.Observation,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.history.GetHistory(r.Context(), userParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type trendPoint struct {
	Date string  `json:"date"`
	BMI  float64 `json:"bmi"`
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	points, err := s.history.GetTrend(r.Context(), userParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items := make([]trendPoint, 0, len(points))
	for _, p := range points {
		items = append(items, trendPoint{Date: p.Day(), BMI: p.BMI})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
