package authcode

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/oshokin/authcode-grabber/internal/logger"
)

// callbackPage is rendered for every browser-facing response of the listener.
type callbackPage struct {
	Title   string
	Message string
	Hint    string
	Tone    string
}

//nolint:gochecknoglobals // Parsed once, immutable afterwards.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; text-align: center; }
        .container { max-width: 600px; margin: 0 auto; }
        .message { padding: 20px; border-radius: 5px; margin: 20px 0; }
        .info { background-color: #e7f3ff; border: 1px solid #b3d9ff; color: #0066cc; }
        .success { background-color: #e7f6e7; border: 1px solid #b3e6b3; color: #006600; }
        .error { background-color: #ffe7e7; border: 1px solid #ffb3b3; color: #cc0000; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <div class="message {{.Tone}}">
            <p>{{.Message}}</p>
            {{if .Hint}}<p>{{.Hint}}</p>{{end}}
        </div>
    </div>
</body>
</html>
`))

func waitingPage() callbackPage {
	return callbackPage{
		Title:   "Waiting for Authorization",
		Message: "The callback listener is running. Complete the authorization in this browser.",
		Tone:    "info",
	}
}

func successPage() callbackPage {
	return callbackPage{
		Title:   "Authorization Successful",
		Message: "The authorization code was received.",
		Hint:    "You can close this window and return to the terminal.",
		Tone:    "success",
	}
}

func failurePage(err error) callbackPage {
	return callbackPage{
		Title:   "Authorization Failed",
		Message: err.Error(),
		Hint:    "Return to the terminal and start the authorization again.",
		Tone:    "error",
	}
}

func alreadyHandledPage() callbackPage {
	return callbackPage{
		Title:   "Authorization Already Processed",
		Message: "This authorization attempt has already received its callback.",
		Hint:    "Return to the terminal to see the result.",
		Tone:    "error",
	}
}

// writePage renders the page into a buffer first so template failures still yield a clean status.
func writePage(ctx context.Context, w http.ResponseWriter, status int, page callbackPage) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		logger.Errorf(ctx, "Failed to render %q page: %v", page.Title, err)
		http.Error(w, page.Title, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warnf(ctx, "Failed to write HTML content: %v", err)
	}
}
