package fixtures

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Transport serves HTTP requests with app in-process, without a listener.
func Transport(app *fiber.App) http.RoundTripper {
	return roundTripper{app: app}
}

type roundTripper struct {
	app *fiber.App
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// -1 disables fiber's test timeout; the client's own timeout still applies.
	return rt.app.Test(req, -1)
}
