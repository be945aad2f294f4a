package main

import (
	"context"
	"net/http"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/ml/v1"
)

// GoogleClientMaker makes clients authorised with application default credentials.
// The cloud platform scope covers both ML Engine and Cloud Storage.
type GoogleClientMaker struct{}

func (_ *GoogleClientMaker) MakeClient(ctx context.Context) (*http.Client, error) {
	return google.DefaultClient(ctx, ml.CloudPlatformScope)
}
