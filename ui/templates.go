package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"strconv"
)

func parseTemplates(files fs.FS) (*template.Template, error) {
	funcMap := template.FuncMap{
		"pct": func(p float64) string { return fmt.Sprintf("%.1f%%", p*100) },
		"mul": func(a, b float64) float64 { return a * b },
		"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}
