package testhelpers

import (
	"context"
	"net/http"
	"testing"
)

type ContextMaker struct {
	MakeContextFunc func(r *http.Request) (context.Context, error)
}

func NewContextMaker(t *testing.T) *ContextMaker {
	return &ContextMaker{
		MakeContextFunc: func(r *http.Request) (context.Context, error) {
			t.Error("MakeContext should not be called")
			return nil, nil
		},
	}
}

func (cm *ContextMaker) MakeContext(r *http.Request) (context.Context, error) {
	return cm.MakeContextFunc(r)
}
