package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-tracker/internal/export"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3ArchiverUploads(t *testing.T) {
	fake := &fakeS3{}
	a, err := NewS3Archiver(fake, "reports", "/exports/")
	require.NoError(t, err)
	a.now = func() time.Time { return time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC) }

	loc, err := a.Archive(context.Background(), export.File{Name: "candidate_summary.csv", ContentType: export.ContentTypeCSV, Body: []byte("a,b\n")})
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/exports/20261016T083000Z/candidate_summary.csv", loc)
	assert.Equal(t, "reports", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "exports/20261016T083000Z/candidate_summary.csv", aws.ToString(fake.in.Key))
	assert.Equal(t, export.ContentTypeCSV, aws.ToString(fake.in.ContentType))
	assert.Equal(t, "a,b\n", string(fake.body))
}

func TestS3ArchiverErrors(t *testing.T) {
	_, err := NewS3Archiver(&fakeS3{}, "", "")
	assert.Error(t, err)

	a, err := NewS3Archiver(&fakeS3{err: errors.New("denied")}, "b", "")
	require.NoError(t, err)
	_, err = a.Archive(context.Background(), export.File{Name: "x.xlsx"})
	assert.ErrorContains(t, err, "denied")
}
