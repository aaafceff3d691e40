package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SharePage serves the public landing page for a share code. The page is a
// placeholder: the code is not resolved to patient data here.
func SharePage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Shared Care Summary</title></head>
<body>
<h1>Shared Care Summary</h1>
<p>Share code: <strong>%s</strong></p>
<p>Open this link in the CareLog app to view the shared summary.</p>
</body>
</html>
`, html.EscapeString(code))
}
