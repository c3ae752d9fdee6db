// SPDX-License-Identifier: MIT

package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var csvHeader = []string{
	"pl_name", "hostname", "discoverymethod", "disc_year", "planet_type",
	"pl_rade", "pl_masse", "pl_eqt", "pl_orbper", "habitability_score",
}

// handleExportCSV streams the current explorer selection as CSV. The same
// query parameters as /explorer apply.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.Explore(r.Context(), parseFilter(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	filename := fmt.Sprintf("exoplanets_%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			strOrEmpty(row.Host),
			strOrEmpty(row.Method),
			intOrEmpty(row.Year),
			strOrEmpty(row.Type),
			floatOrEmpty(row.Radius),
			floatOrEmpty(row.Mass),
			floatOrEmpty(row.Temp),
			floatOrEmpty(row.Period),
			strconv.Itoa(row.Score),
		}
		if err := cw.Write(record); err != nil {
			return
		}
	}
	cw.Flush()
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
