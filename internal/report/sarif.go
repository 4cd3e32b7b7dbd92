package report

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/hexsprite/lintmesh/internal/model"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool     `json:"tool"`
	Automation sarifAuto     `json:"automationDetails"`
	Results    []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type sarifAuto struct {
	GUID string `json:"guid"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// ToSARIF renders the report as SARIF 2.1.0, one run per tool that actually
// executed. Failed tools are included with zero results so consumers can see
// the tool was attempted.
func ToSARIF(rep *model.Report) ([]byte, error) {
	byTool := make(map[string][]sarifResult, len(rep.Linters))
	for _, is := range rep.Issues {
		byTool[is.Linter] = append(byTool[is.Linter], sarifResult{
			RuleID:  is.Rule,
			Level:   sarifLevel(is.Severity),
			Message: sarifMessage{Text: is.Message},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: is.Path},
				Region: sarifRegion{
					StartLine:   is.Line,
					StartColumn: is.Column,
					EndLine:     is.EndLine,
					EndColumn:   is.EndColumn,
				},
			}}},
		})
	}

	runs := make([]sarifRun, 0, len(rep.Linters))
	for _, lr := range rep.Linters {
		results := byTool[lr.Name]
		if results == nil {
			results = []sarifResult{}
		}
		runs = append(runs, sarifRun{
			Tool:       sarifTool{Driver: sarifDriver{Name: lr.Name, Version: lr.Version}},
			Automation: sarifAuto{GUID: uuid.NewString()},
			Results:    results,
		})
	}

	s := sarif{Version: "2.1.0", Schema: sarifSchema, Runs: runs}
	return json.MarshalIndent(s, "", "  ")
}

func sarifLevel(sev model.Severity) string {
	switch sev {
	case model.SeverityError:
		return "error"
	case model.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
