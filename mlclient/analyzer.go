package mlclient

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"time"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"google.golang.org/api/ml/v1"
)

var jobIDInvalidChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// newJobID derives an ML Engine job ID from an analysis ID.
// Job IDs may only hold letters, digits and underscores, and must start with a letter.
func newJobID(analysisID string, now time.Time) string {
	id := jobIDInvalidChars.ReplaceAllString(analysisID, "_")
	if id == "" || !isLetter(id[0]) {
		id = "a" + id
	}
	return id + "_" + strconv.FormatInt(now.UnixNano(), 10)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Analyzer trains analyses as ML Engine training jobs and deploys each
// finished job's model as a version of Model.
type Analyzer struct {
	HttpClientMaker HttpClientMaker
	PollLimiter     *rate.Limiter

	Project        string
	Region         string
	Bucket         string
	Model          string
	RuntimeVersion string
	PythonVersion  string
	TrainerPackage string
	TrainerModule  string
}

func (a *Analyzer) service(ctx context.Context) (*ml.Service, error) {
	client, err := a.HttpClientMaker.MakeClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "analyzer couldn't create client")
	}
	s, err := ml.New(client)
	if err != nil {
		return nil, errors.Wrap(err, "analyzer couldn't create service")
	}
	return s, nil
}

// CreateAnalysis submits a training job over the table's rows.
// Job IDs are never reused, so each call gets a fresh one derived from analysisID and now.
func (a *Analyzer) CreateAnalysis(ctx context.Context, tableID, analysisID string, schema data.Schema, now time.Time) (*data.Analysis, error) {
	l := ctxlogrus.Get(ctx)

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, errors.Wrap(err, "createAnalysis couldn't encode schema")
	}

	jobID := newJobID(analysisID, now)
	analysis := &data.Analysis{
		ID:      analysisID,
		TableID: tableID,
		JobID:   jobID,
		JobDir:  "gs://" + a.Bucket + "/analyses/" + jobID,
	}

	s, err := a.service(ctx)
	if err != nil {
		return nil, err
	}

	job := &ml.GoogleCloudMlV1__Job{
		JobId: jobID,
		TrainingInput: &ml.GoogleCloudMlV1__TrainingInput{
			Args: []string{
				"--table=" + TableURI(a.Bucket, tableID),
				"--schema=" + string(schemaJSON),
			},
			JobDir:         analysis.JobDir,
			PackageUris:    []string{a.TrainerPackage},
			PythonModule:   a.TrainerModule,
			PythonVersion:  a.PythonVersion,
			Region:         a.Region,
			RuntimeVersion: a.RuntimeVersion,
			ScaleTier:      "BASIC",
		},
	}

	l.Infof("Submitting training job %s", jobID)
	_, err = s.Projects.Jobs.Create("projects/"+a.Project, job).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "createAnalysis couldn't submit training job")
	}

	return analysis, nil
}

// Wait blocks until the analysis' training job has finished and its model
// has been deployed, then records the deployed version on the analysis.
func (a *Analyzer) Wait(ctx context.Context, analysis *data.Analysis) error {
	l := ctxlogrus.Get(ctx)

	s, err := a.service(ctx)
	if err != nil {
		return err
	}

	jobName := "projects/" + a.Project + "/jobs/" + analysis.JobID
	for {
		if err := a.PollLimiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "wait gave up polling training job")
		}

		job, err := s.Projects.Jobs.Get(jobName).Context(ctx).Do()
		if err != nil {
			return errors.Wrap(err, "wait couldn't get training job")
		}

		l.Debugf("Training job %s is %s", analysis.JobID, job.State)
		if job.State == "SUCCEEDED" {
			break
		}
		if job.State == "FAILED" || job.State == "CANCELLED" {
			return errors.Errorf("training job %s ended as %s: %s", analysis.JobID, job.State, job.ErrorMessage)
		}
	}

	version := &ml.GoogleCloudMlV1__Version{
		Name:           analysis.JobID,
		DeploymentUri:  analysis.JobDir + "/model",
		RuntimeVersion: a.RuntimeVersion,
		PythonVersion:  a.PythonVersion,
	}

	l.Infof("Deploying model version %s", analysis.JobID)
	op, err := s.Projects.Models.Versions.Create("projects/"+a.Project+"/models/"+a.Model, version).Context(ctx).Do()
	if err != nil {
		return errors.Wrap(err, "wait couldn't create model version")
	}

	for !op.Done {
		if err := a.PollLimiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "wait gave up polling version deployment")
		}

		op, err = s.Projects.Operations.Get(op.Name).Context(ctx).Do()
		if err != nil {
			return errors.Wrap(err, "wait couldn't get version deployment")
		}
	}
	if op.Error != nil {
		return errors.Errorf("deploying version %s failed: %s", analysis.JobID, op.Error.Message)
	}

	analysis.Version = analysis.JobID
	return nil
}
