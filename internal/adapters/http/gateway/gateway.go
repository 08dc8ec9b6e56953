// Package gateway serves an http.Handler behind AWS API Gateway proxy
// integrations.
package gateway

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/okian/crm/internal/adapters/http/api"
)

// Adapter translates proxy events into requests for a handler.
type Adapter struct {
	proxy *httpadapter.HandlerAdapter
}

// New returns an Adapter serving h. Requests without an X-Request-ID take
// the API Gateway request id.
func New(h http.Handler) *Adapter {
	return &Adapter{proxy: httpadapter.New(gatewayRequestID(h))}
}

// Serve runs one proxy event through the handler. Events that cannot be
// turned into a request are returned as errors; everything the handler
// answers, including 4xx and 5xx, is a response.
func (a *Adapter) Serve(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return a.proxy.ProxyWithContext(ctx, ev)
}

func gatewayRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(api.HeaderRequestID) == "" {
			if rc, ok := core.GetAPIGatewayContextFromContext(r.Context()); ok && rc.RequestID != "" {
				r.Header.Set(api.HeaderRequestID, rc.RequestID)
			}
		}
		next.ServeHTTP(w, r)
	})
}
