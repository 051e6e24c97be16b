package oauth

import (
	_ "embed"
	"io"
	"net/http"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/callback.txt
var callbackTemplateText string

var callbackTemplate = template.Must(
	template.New("callback").Funcs(sprig.TxtFuncMap()).Parse(callbackTemplateText),
)

// Page is a plain-text response shown in the browser after the redirect.
type Page struct {
	Status  int
	Message string
	Hint    string
}

var (
	// PageSuccess is shown once the token has been stored.
	PageSuccess = Page{
		Status:  http.StatusOK,
		Message: "successfully authenticated! you can close this now",
	}

	// PageMalformed is shown when code or state is missing.
	PageMalformed = Page{
		Status:  http.StatusBadRequest,
		Message: "something went wrong",
		Hint:    "The authorization response was incomplete. Run `vercelctl auth login` again.",
	}

	// PageInvalidAuthentication is shown when state does not match the session.
	PageInvalidAuthentication = Page{
		Status:  http.StatusForbidden,
		Message: "invalid authentication",
		Hint:    "This callback does not belong to the current login. Run `vercelctl auth login` again.",
	}

	// PageExchangeFailed is shown when the code could not be turned into a stored token.
	PageExchangeFailed = Page{
		Status:  http.StatusBadGateway,
		Message: "error exchanging access token",
	}

	pageAlreadyProcessed = Page{
		Status:  http.StatusBadRequest,
		Message: "callback already processed",
	}
)

// Render writes the page body.
func (p Page) Render(w io.Writer) error {
	return callbackTemplate.Execute(w, p)
}
