package httpapi

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
)

const swaggerUIVersion = "5"

//go:embed openapi.yaml
var openAPIDocument []byte

var docsTemplate = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: {{.DocumentURL}}, dom_id: "#swagger-ui", deepLinking: true});
</script>
</body>
</html>
`))

// docsPage is rendered once; the page only varies by build.
var docsPage = renderDocsPage("Football Stats API", "/openapi.yaml")

func renderDocsPage(title, documentURL string) []byte {
	var buf bytes.Buffer
	err := docsTemplate.Execute(&buf, struct {
		Title, Version, DocumentURL string
	}{title, swaggerUIVersion, documentURL})
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()

	serveStatic(w, "application/yaml; charset=utf-8", openAPIDocument)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()

	serveStatic(w, "text/html; charset=utf-8", docsPage)
}

func serveStatic(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(body)
}
