package mlclient

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"math"
	"strings"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/pkg/errors"
	"google.golang.org/api/ml/v1"
)

const DefaultPredictionCount = 100

type PredictionMaker struct {
	CacheStorage    CacheStorage
	HttpClientMaker HttpClientMaker
	Project         string
	Model           string

	// Count is the number of samples the service draws to form each estimate.
	Count int
}

type cachedPrediction struct {
	Estimate    interface{}
	Uncertainty float64
}

// Predict asks the analysis' model version for the value of target in row.
// row must not carry an _id, and its target value is ignored.
func (pm *PredictionMaker) Predict(ctx context.Context, analysis *data.Analysis, row data.Row, target string) (estimate interface{}, uncertainty float64, err error) {
	l := ctxlogrus.Get(ctx)
	l.Debugf("Predicting %s from inputs: %v", target, row)

	count := pm.Count
	if count <= 0 {
		count = DefaultPredictionCount
	}

	req, err := newMLRequest(row, target, count)
	if err != nil {
		return nil, 0, errors.Wrap(err, "makePrediction couldn't create request")
	}

	cacheKey := generatePredictionCacheKey(analysis.Version, req.HttpBody.Data)
	var cached cachedPrediction
	err = pm.CacheStorage.Get(ctx, cacheKey, &cached)
	if err == nil {
		return cached.Estimate, cached.Uncertainty, nil
	}
	l.Debug("Can't read prediction from cache: " + err.Error())

	client, err := pm.HttpClientMaker.MakeClient(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "makePrediction couldn't create client")
	}

	s, err := ml.New(client)
	if err != nil {
		return nil, 0, errors.Wrap(err, "makePrediction couldn't create service")
	}

	name := "projects/" + pm.Project + "/models/" + pm.Model + "/versions/" + analysis.Version
	r, err := s.Projects.Predict(name, req).Context(ctx).Do()
	if err != nil {
		return nil, 0, errors.Wrap(err, "makePrediction couldn't run request")
	}

	var result result
	err = json.NewDecoder(strings.NewReader(r.Data)).Decode(&result)
	if err != nil {
		return nil, 0, errors.Wrap(err, "makePrediction couldn't decode response")
	}
	if len(result.Predictions) != 1 {
		l.Warn("Got a malformed predict call response")
		return nil, 0, errors.New("makePrediction got malformed predict response: Did not get one and only one prediction")
	}
	p := result.Predictions[0]
	if p.Uncertainty == nil || math.IsNaN(*p.Uncertainty) || math.IsInf(*p.Uncertainty, 0) || *p.Uncertainty < 0 {
		l.Warn("Got a predict call response without a usable uncertainty")
		return nil, 0, errors.New("makePrediction got malformed predict response: uncertainty missing or out of range")
	}

	// We ignore failures in writing to cache.
	cached = cachedPrediction{Estimate: p.Estimate, Uncertainty: *p.Uncertainty}
	cacheWriteErr := pm.CacheStorage.Set(ctx, cacheKey, &cached)
	if cacheWriteErr != nil {
		l.Warn("Can't write prediction to cache: " + cacheWriteErr.Error())
	}

	return cached.Estimate, cached.Uncertainty, nil
}

type request struct {
	Instances []requestInstance `json:"instances"`
}

type requestInstance struct {
	Row    data.Row `json:"row"`
	Target string   `json:"target"`
	Count  int      `json:"count"`
}

type result struct {
	Predictions []resultPrediction `json:"predictions"`
}

type resultPrediction struct {
	Estimate    interface{} `json:"estimate"`
	Uncertainty *float64    `json:"uncertainty"`
}

func newMLRequest(row data.Row, target string, count int) (*ml.GoogleCloudMlV1__PredictRequest, error) {
	if target == "" {
		return nil, errors.New("no target column given")
	}
	if _, ok := row[data.IDColumn]; ok {
		return nil, errors.Errorf("prediction request must not contain %s", data.IDColumn)
	}

	instance := row.Copy()
	instance[target] = nil

	jsonreq := request{
		Instances: []requestInstance{
			{
				Row:    instance,
				Target: target,
				Count:  count,
			},
		},
	}

	payload, err := json.Marshal(&jsonreq)
	if err != nil {
		return nil, errors.Wrap(err, "mkreq could not marshal JSON")
	}

	req := ml.GoogleCloudMlV1__PredictRequest{
		HttpBody: &ml.GoogleApi__HttpBody{
			ContentType: "application/json",
			Data:        string(payload),
		},
	}

	return &req, nil
}

func generatePredictionCacheKey(version, payload string) string {
	sum := sha256.Sum256([]byte(version + "\x00" + payload))
	return base64.StdEncoding.EncodeToString(sum[:])
}
