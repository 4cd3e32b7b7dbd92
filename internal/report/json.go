// Package report renders an aggregated run for people and machines.
package report

import (
	"encoding/json"
	"io"

	"github.com/hexsprite/lintmesh/internal/model"
)

// RenderJSON writes the report in its canonical wire form.
func RenderJSON(w io.Writer, rep *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
