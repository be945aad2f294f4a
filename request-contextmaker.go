package main

import (
	"context"
	"net/http"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/sirupsen/logrus"
)

type RequestContextMaker struct{}

func (cm *RequestContextMaker) MakeContext(r *http.Request) (context.Context, error) {
	return ctxlogrus.WithFields(r.Context(), logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}), nil
}
