// SPDX-License-Identifier: MIT

package web

import (
	"encoding/json"
	"html/template"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// templateFuncs returns the helpers shared by all page templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"comma": func(n int) string {
			return printer.Sprintf("%d", n)
		},
		"num": func(v *float64) string {
			if v == nil {
				return "—"
			}
			return printer.Sprintf("%.2f", *v)
		},
		"year": func(v *int) string {
			if v == nil {
				return "—"
			}
			return printer.Sprintf("%d", *v)
		},
		"str": func(v *string) string {
			if v == nil || *v == "" {
				return "—"
			}
			return *v
		},
		// inList keeps form selections marked across submissions.
		"inList": func(v string, list []string) bool {
			return slices.Contains(list, v)
		},
		// chartJSON embeds precomputed chart data into an inline script.
		"chartJSON": func(v any) template.JS {
			raw, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(raw) //nolint:gosec // marshalled JSON, not user markup
		},
	}
}
