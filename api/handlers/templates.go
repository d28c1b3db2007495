package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home",
	"courses",
	"students",
	"confirm_delete",
	"add_course",
	"update_course",
	"update_student",
	"register",
	"busy",
}

var templateFuncs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

// Templates holds one parsed template set per page, each sharing the layout.
type Templates struct {
	pages map[string]*template.Template
}

// ParseTemplates parses the embedded page templates.
func ParseTemplates() (*Templates, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	t := &Templates{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		t.pages[name] = page
	}
	return t, nil
}

// Execute renders the named page into w.
func (t *Templates) Execute(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("failed to execute page %s: %w", name, err)
	}
	return nil
}
