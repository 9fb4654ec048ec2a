package httpkit

import (
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

type ListingEntry struct {
	Name     string
	Href     string
	IsDir    bool
	Size     int64
	Modified time.Time
}

type listingPage struct {
	Title      string
	ParentHref string
	Entries    []*ListingEntry
}

var listingTpl = template.Must(template.New("listing").Funcs(template.FuncMap{
	"size": func(e *ListingEntry) string {
		if e.IsDir {
			return "-"
		}
		return humanize.IBytes(uint64(e.Size))
	},
	"mtime": func(e *ListingEntry) string {
		if e.Modified.IsZero() {
			return ""
		}
		return humanize.Time(e.Modified)
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; margin: 0; padding: 20px; background-color: #f4f4f4; }
h1 { color: #333; }
.file-list { background-color: white; border-radius: 5px; padding: 20px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
.file-item { padding: 10px; border-bottom: 1px solid #eee; display: flex; }
.file-item:last-child { border-bottom: none; }
.file-item a { color: #0066cc; text-decoration: none; flex: 1; }
.file-item span { color: #888; width: 120px; text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="file-list">
{{- if .ParentHref}}
<div class="file-item"><a href="{{.ParentHref}}">..</a></div>
{{- end}}
{{- range .Entries}}
<div class="file-item"><a href="{{.Href}}">{{if .IsDir}}📁 {{else}}📄 {{end}}{{.Name}}</a><span>{{size .}}</span><span>{{mtime .}}</span></div>
{{- end}}
</div>
</body>
</html>
`))

// RenderListing writes an html directory page. ParentHref may be empty for the root.
func RenderListing(w io.Writer, title string, parentHref string, entries []*ListingEntry) error {
	return listingTpl.Execute(w, &listingPage{
		Title:      title,
		ParentHref: parentHref,
		Entries:    entries,
	})
}
