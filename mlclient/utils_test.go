package mlclient

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
)

type testHttpClientMaker struct {
	MakeClientFunc func(ctx context.Context) (*http.Client, error)
}

func newTestHttpClientMaker(t *testing.T) *testHttpClientMaker {
	return &testHttpClientMaker{
		MakeClientFunc: func(ctx context.Context) (*http.Client, error) {
			t.Error("MakeClient should not be called")
			return nil, nil
		},
	}
}

func (cm *testHttpClientMaker) MakeClient(ctx context.Context) (*http.Client, error) {
	return cm.MakeClientFunc(ctx)
}

type testRoundTripper struct {
	RoundTripFunc func(*http.Request) (*http.Response, error)
}

func (rt *testRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	return rt.RoundTripFunc(r)
}

func roundTripClientMaker(t *testing.T, roundTripFunc func(*http.Request) (*http.Response, error)) *testHttpClientMaker {
	cm := newTestHttpClientMaker(t)
	cm.MakeClientFunc = func(ctx context.Context) (*http.Client, error) {
		client := new(http.Client)
		client.Transport = &testRoundTripper{
			RoundTripFunc: roundTripFunc,
		}
		return client, nil
	}
	return cm
}

func jsonResponse(statusCode int, body string) *http.Response {
	resp := new(http.Response)
	resp.StatusCode = statusCode
	resp.ContentLength = -1
	resp.Header = http.Header{"Content-Type": []string{"application/json"}}
	resp.Body = ioutil.NopCloser(strings.NewReader(body))
	return resp
}
