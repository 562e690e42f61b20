package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Tracing opens a New Relic transaction per request and tags it with the
// request id and the post being acted on. It is a pass-through when no
// application is configured.
type Tracing struct {
	app *newrelic.Application
}

func NewTracing(app *newrelic.Application) *Tracing {
	return &Tracing{app: app}
}

func (t *Tracing) Middleware() echo.MiddlewareFunc {
	if t.app == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	start := nrecho.Middleware(t.app)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return start(annotateTransaction(next))
	}
}

// postAttributes maps route params to transaction attribute names.
var postAttributes = map[string]string{
	"id":         "post.id",
	"comment_id": "comment.id",
}

func annotateTransaction(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		txn := newrelic.FromContext(c.Request().Context())
		if txn == nil {
			return next(c)
		}

		if id := GetRequestID(c); id != "" {
			txn.AddAttribute("request.id", id)
		}
		txn.AddAttribute("http.real_ip", c.RealIP())

		for param, attr := range postAttributes {
			if v := c.Param(param); v != "" {
				txn.AddAttribute(attr, v)
			}
		}

		err := next(c)
		if err != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}

		// RequireAuth runs per route, so the caller is only known afterwards.
		if userID := GetUserID(c); userID != "" {
			txn.AddAttribute("user.id", userID)
		}
		txn.AddAttribute("http.status_code", c.Response().Status)

		return err
	}
}
