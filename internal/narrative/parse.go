package narrative

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

const recommendationsSchema = `{
  "type": "object",
  "required": ["recommendations"],
  "properties": {
    "recommendations": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title", "category", "priority", "steps"],
        "properties": {
          "id": {"type": "integer"},
          "title": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "priority": {"enum": ["Critical", "High", "Medium", "Low"]},
          "businessImpact": {"type": "string"},
          "steps": {"type": "array", "items": {"type": "string"}},
          "estimatedCost": {
            "type": "object",
            "properties": {
              "min": {"type": "number", "minimum": 0},
              "max": {"type": "number", "minimum": 0}
            }
          },
          "timeline": {"type": "string"},
          "resources": {
            "type": "object",
            "properties": {
              "people": {"type": "string"},
              "tools": {"type": "string"}
            }
          },
          "successMetrics": {"type": "array", "items": {"type": "string"}},
          "quickWins": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

const quantifiedRisksSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["risk", "sle", "aro", "ale"],
    "properties": {
      "risk": {"type": "string", "minLength": 1},
      "sle": {"type": "number", "minimum": 0},
      "aro": {"type": "number", "minimum": 0, "maximum": 1},
      "ale": {"type": "number", "minimum": 0},
      "mitigationCost": {"type": "number", "minimum": 0},
      "roi": {"type": "number"}
    }
  }
}`

var (
	recommendationsLoader = gojsonschema.NewStringLoader(recommendationsSchema)
	quantifiedRisksLoader = gojsonschema.NewStringLoader(quantifiedRisksSchema)
)

// extractJSON returns the JSON value embedded in model output: markdown
// fences are stripped and any prose before the first bracket or after the
// matching last bracket is dropped.
func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
		if j := strings.LastIndex(s, "```"); j >= 0 {
			s = s[:j]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s[start:]
	}
	return s[start : end+1]
}

// decode validates the JSON in text against schema and unmarshals it into
// out. Every failure wraps errMalformed.
func decode(text string, schema gojsonschema.JSONLoader, out any) error {
	raw := extractJSON(text)

	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return eris.Wrapf(errMalformed, "invalid json: %v", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return eris.Wrapf(errMalformed, "schema violation: %s", strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return eris.Wrapf(errMalformed, "unmarshal: %v", err)
	}
	return nil
}

func parseRecommendations(text string) ([]model.Recommendation, error) {
	var body struct {
		Recommendations []model.Recommendation `json:"recommendations"`
	}
	if err := decode(text, recommendationsLoader, &body); err != nil {
		return nil, err
	}
	recs := body.Recommendations
	for i := range recs {
		if recs[i].ID == 0 {
			recs[i].ID = i + 1
		}
		if recs[i].QuickWins == nil {
			recs[i].QuickWins = []string{}
		}
	}
	return recs, nil
}

func parseQuantifiedRisks(text string) ([]model.QuantifiedRisk, error) {
	var risks []model.QuantifiedRisk
	if err := decode(text, quantifiedRisksLoader, &risks); err != nil {
		return nil, err
	}
	return risks, nil
}
