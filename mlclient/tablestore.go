package mlclient

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jbeshir/moonbird-auth-frontend/ctxlogrus"
	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/dataset"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/storage/v1"
)

// TableStore keeps each table as a CSV object in a Cloud Storage bucket.
type TableStore struct {
	HttpClientMaker HttpClientMaker
	Bucket          string
}

func tableObject(tableID string) string {
	return "tables/" + tableID + "/rows.csv"
}

// TableURI is the location training jobs read a table's rows from.
func TableURI(bucket, tableID string) string {
	return "gs://" + bucket + "/" + tableObject(tableID)
}

func (ts *TableStore) service(ctx context.Context) (*storage.Service, error) {
	client, err := ts.HttpClientMaker.MakeClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "tableStore couldn't create client")
	}
	s, err := storage.New(client)
	if err != nil {
		return nil, errors.Wrap(err, "tableStore couldn't create service")
	}
	return s, nil
}

func (ts *TableStore) TableExists(ctx context.Context, tableID string) (bool, error) {
	s, err := ts.service(ctx)
	if err != nil {
		return false, err
	}

	_, err = s.Objects.Get(ts.Bucket, tableObject(tableID)).Context(ctx).Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == http.StatusNotFound {
			return false, nil
		}
		return false, errors.Wrapf(err, "tableExists couldn't look up table %s", tableID)
	}
	return true, nil
}

func (ts *TableStore) DeleteTable(ctx context.Context, tableID string) error {
	s, err := ts.service(ctx)
	if err != nil {
		return err
	}

	err = s.Objects.Delete(ts.Bucket, tableObject(tableID)).Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "deleteTable couldn't delete table %s", tableID)
	}
	return nil
}

// UploadRows replaces the table's contents with rows.
func (ts *TableStore) UploadRows(ctx context.Context, tableID string, rows []data.Row, schema data.Schema) error {
	l := ctxlogrus.Get(ctx)

	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, rows, schema); err != nil {
		return errors.Wrap(err, "uploadRows couldn't encode rows")
	}

	s, err := ts.service(ctx)
	if err != nil {
		return err
	}

	l.Infof("Uploading %d rows (%d bytes) to %s", len(rows), buf.Len(), TableURI(ts.Bucket, tableID))
	object := &storage.Object{
		Name:        tableObject(tableID),
		ContentType: "text/csv",
	}
	_, err = s.Objects.Insert(ts.Bucket, object).Media(&buf).Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "uploadRows couldn't write table %s", tableID)
	}
	return nil
}
