package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/narrative"
	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
)

// IndustryInfo is one entry of GET /v1/industries.
type IndustryInfo struct {
	ID           string                                    `json:"id"`
	Dimensions   map[model.Dimension]model.DimensionWeight `json:"dimensions"`
	AverageScore float64                                   `json:"averageMaturityScore"`
	CommonGaps   []string                                  `json:"commonGaps"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndustries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Industries(s.tables))
}

// Industries lists every industry with its dimension weights and peer average.
func Industries(t *industry.Tables) []IndustryInfo {
	ids := t.Industries()
	out := make([]IndustryInfo, 0, len(ids))
	for _, id := range ids {
		_, cfg := t.Config(id)
		_, bench := t.Benchmark(id)
		out = append(out, IndustryInfo{
			ID:           id,
			Dimensions:   cfg.Dimensions,
			AverageScore: bench.AverageScore,
			CommonGaps:   bench.CommonGaps,
		})
	}
	return out
}

func (s *Server) handleNarrativeStatus(w http.ResponseWriter, r *http.Request) {
	gen := s.assembler.Narrative()
	if gen == nil {
		writeJSON(w, http.StatusOK, narrative.Disabled{}.Status(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, gen.Status(r.Context()))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	p, ok := readProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.assembler.Assess(p))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := report.FormatJSON
	if v := q.Get("format"); v != "" {
		f, err := report.ParseFormat(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	assembler := s.assembler
	if v := q.Get("ai"); v != "" {
		ai, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ai must be a boolean")
			return
		}
		if !ai {
			assembler = assembler.WithoutNarrative()
		}
	}

	p, ok := readProfile(w, r)
	if !ok {
		return
	}

	rep := assembler.Generate(r.Context(), p)

	w.Header().Set("Content-Type", contentType(format))
	if format == report.FormatXLSX {
		w.Header().Set("Content-Disposition", `attachment; filename="grc-report-`+rep.ID+`.xlsx"`)
	}
	w.WriteHeader(http.StatusOK)
	if err := report.Write(w, rep, format); err != nil {
		zap.L().Error("api: write report", zap.String("report_id", rep.ID), zap.Error(err))
	}
}

// readProfile decodes the request body as a profile. YAML is accepted when
// the Content-Type says so. On failure it writes a 413 for an oversized body,
// otherwise a 400, and returns false.
func readProfile(w http.ResponseWriter, r *http.Request) (model.Profile, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return model.Profile{}, false
		}
		writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
		return model.Profile{}, false
	}

	format := "json"
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = "yaml"
	}

	p, err := model.DecodeProfile(data, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.Profile{}, false
	}
	return p, true
}

func contentType(f report.Format) string {
	switch f {
	case report.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case report.FormatYAML:
		return "application/yaml"
	case report.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
