package watson

import (
	"context"
	"net/http"
)

// Call is a single outbound request travelling through the interceptor chain.
type Call struct {
	Operation Operation
	Request   *http.Request
}

// Invoker sends a call and returns the service's response.
// It is passed to [UnaryInterceptor] functions to invoke the next
// interceptor or the transport.
type Invoker func(ctx context.Context, call *Call) (*DetailedResponse, error)

// UnaryInterceptor is a hook that wraps every request/response exchange.
//
//	func timing(ctx context.Context, call *watson.Call, next watson.Invoker) (*watson.DetailedResponse, error) {
//	    start := time.Now()
//	    resp, err := next(ctx, call)
//	    log.Printf("%s took %v", call.Operation.ID(), time.Since(start))
//	    return resp, err
//	}
//
// Interceptors can:
//   - Inspect or modify call.Request (headers, URL) before calling next
//   - Inspect the response or error after calling next
//   - Short-circuit by returning without calling next
type UnaryInterceptor func(ctx context.Context, call *Call, next Invoker) (*DetailedResponse, error)

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []UnaryInterceptor) UnaryInterceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, call *Call, invoker Invoker) (*DetailedResponse, error) {
		// Chain: i[0] -> i[1] -> ... -> invoker
		chain := invoker
		for i := len(interceptors) - 1; i >= 0; i-- {
			current := interceptors[i]
			next := chain
			chain = func(ctx context.Context, call *Call) (*DetailedResponse, error) {
				return current(ctx, call, next)
			}
		}
		return chain(ctx, call)
	}
}
