package services

import (
	"context"
	"io"

	"github.com/feezz8/toll-aggregation/internal/core/domain"
)

// sentRequest is one call observed by fakeTransport.
type sentRequest struct {
	req        domain.Request
	credential string
	upload     []byte
}

// fakeTransport answers every request with a fixed response or error.
type fakeTransport struct {
	resp  *domain.Response
	err   error
	calls []sentRequest
}

func (f *fakeTransport) Do(_ context.Context, req domain.Request, credential string) (*domain.Response, error) {
	call := sentRequest{req: req, credential: credential}
	if req.File != nil {
		// Read while the caller still holds the file open.
		data, err := io.ReadAll(req.File.Content)
		if err != nil {
			return nil, err
		}
		call.upload = data
	}
	f.calls = append(f.calls, call)
	return f.resp, f.err
}

func respond(status int, body string) *fakeTransport {
	return &fakeTransport{resp: &domain.Response{StatusCode: status, Body: []byte(body)}}
}

// fakeDispatcher records requests and returns a fixed outcome.
type fakeDispatcher struct {
	outcome  domain.Outcome
	requests []domain.Request
}

func (f *fakeDispatcher) Send(_ context.Context, req domain.Request) domain.Outcome {
	f.requests = append(f.requests, req)
	return f.outcome
}
