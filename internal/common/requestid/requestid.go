package requestid

import (
	"context"
	"net/http"

	"github.com/renstrom/shortuuid"

	"github.com/oms-project/omsctl/internal/common/omscontext"
)

// Request IDs are embedded in HTTP headers using this key.
// This is the standard key used for request Ids. For example, opentelemetry uses the same one.
const HeaderKey = "X-Request-Id"

type contextKey struct{}

// FromContext returns the request Id stored in a context, if one is available.
// The second return value is true if the operation was successful.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// AddToContext returns a new context derived from ctx that is annotated with an Id, both as a value and as
// the requestId log field. If ctx already has an Id, it is overwritten.
func AddToContext(ctx *omscontext.Context, id string) *omscontext.Context {
	return omscontext.WithLogField(omscontext.WithValue(ctx, contextKey{}, id), "requestId", id)
}

// SetHeader annotates an outgoing request with an Id, reusing the one stored in the request context if
// there is one and generating a new one with github.com/renstrom/shortuuid otherwise. It returns the Id.
func SetHeader(req *http.Request) string {
	id, ok := FromContext(req.Context())
	if !ok {
		id = shortuuid.New()
	}
	req.Header.Set(HeaderKey, id)
	return id
}
