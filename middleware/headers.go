package middleware

import (
	"context"

	"github.com/broady/watson"
	"github.com/google/uuid"
)

const (
	// LearningOptOutHeader asks the service not to use request data to
	// improve its models.
	LearningOptOutHeader = "X-Watson-Learning-Opt-Out"

	// MetadataHeader labels request data with a customer ID so it can
	// later be removed with DeleteUserData.
	MetadataHeader = "X-Watson-Metadata"

	// RequestIDHeader correlates a request with service-side logs.
	RequestIDHeader = "X-Request-Id"
)

// HeadersInterceptor sets fixed headers on every call, overriding any
// value already present.
func HeadersInterceptor(headers map[string]string) watson.UnaryInterceptor {
	return func(ctx context.Context, call *watson.Call, next watson.Invoker) (*watson.DetailedResponse, error) {
		for k, v := range headers {
			call.Request.Header.Set(k, v)
		}
		return next(ctx, call)
	}
}

// LearningOptOut opts every call out of service-side data collection.
func LearningOptOut() watson.UnaryInterceptor {
	return HeadersInterceptor(map[string]string{LearningOptOutHeader: "true"})
}

// CustomerID tags every call with customer_id=id for later deletion.
func CustomerID(id string) watson.UnaryInterceptor {
	return HeadersInterceptor(map[string]string{MetadataHeader: "customer_id=" + id})
}

// RequestIDInterceptor sets a fresh random X-Request-Id on calls that do
// not already carry one.
func RequestIDInterceptor() watson.UnaryInterceptor {
	return func(ctx context.Context, call *watson.Call, next watson.Invoker) (*watson.DetailedResponse, error) {
		if call.Request.Header.Get(RequestIDHeader) == "" {
			call.Request.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return next(ctx, call)
	}
}
