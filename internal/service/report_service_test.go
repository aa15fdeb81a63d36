package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/export"
	"candidate-tracker/internal/repo"
)

type fakeArchiver struct {
	files []export.File
	err   error
}

func (a *fakeArchiver) Archive(_ context.Context, f export.File) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.files = append(a.files, f)
	return "mem://" + f.Name, nil
}

func seedRecords(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	for _, in := range []domain.RecordInput{
		{CandidateName: "A", Date: "2024-01-01", MorningApplications: domain.Yes, Submissions: 3, Interviews: 1},
		{CandidateName: "B", Date: "2024-01-02", Submissions: 1},
		{CandidateName: "A", Date: "2024-01-03", Screenings: 1, Interviews: 1},
	} {
		_, _, err := f.records.Submit(ctx, adminActor, in)
		require.NoError(t, err)
	}
	_, _, err := f.records.Submit(ctx, candidateActor, domain.RecordInput{Date: "2024-01-04", Submissions: 5})
	require.NoError(t, err)
}

func TestDashboardScope(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedRecords(t, f)

	v, err := f.reports.Dashboard(ctx, adminActor)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Totals.Records)
	assert.Equal(t, 9, v.Totals.Submissions)
	require.Len(t, v.Recent, 4)
	assert.Equal(t, "Roja", v.Recent[0].CandidateName)

	v, err = f.reports.Dashboard(ctx, candidateActor)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Totals.Records)
	assert.Equal(t, 5, v.Totals.Submissions)

	v, err = f.reports.Dashboard(ctx, domain.SessionUser{ID: "nobody", Role: domain.RolePending})
	require.NoError(t, err)
	assert.Equal(t, 0, v.Totals.Records)
	assert.Empty(t, v.Recent)
}

func TestAnalytics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedRecords(t, f)

	v, err := f.reports.Analytics(ctx)
	require.NoError(t, err)
	require.Len(t, v.Summaries, 3)
	// A: 1+3+0+1 + 0+0+1+1 = 7
	assert.Equal(t, "A", v.Summaries[0].CandidateName)
	assert.Equal(t, 7, v.Summaries[0].TotalActivity)
	assert.Equal(t, 29, v.Summaries[0].SuccessRate)
	assert.Equal(t, 4, v.Totals.Records)
	assert.Len(t, v.Chart, 3)
	assert.Len(t, v.Timeline, 4)
}

func TestExportArchives(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedRecords(t, f)
	a := &fakeArchiver{}
	s := NewReportService(repo.NewRecordRepo(f.store, nil), a, nil)

	file, err := s.Export(ctx, export.KindSummary, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "candidate_summary.csv", file.Name)
	assert.Contains(t, string(file.Body), "Success Rate (%)")
	require.Len(t, a.files, 1)
	assert.Equal(t, file.Name, a.files[0].Name)
}

func TestExportArchiveFailureIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedRecords(t, f)
	s := NewReportService(repo.NewRecordRepo(f.store, nil), &fakeArchiver{err: errors.New("bucket gone")}, nil)

	file, err := s.Export(ctx, export.KindAll, export.FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "all_candidates_data.xlsx", file.Name)
	assert.NotEmpty(t, file.Body)
}

func TestExportUnknownKind(t *testing.T) {
	f := newFixture(t)
	_, err := f.reports.Export(context.Background(), export.Kind("weekly"), export.FormatXLSX)
	assert.ErrorIs(t, err, export.ErrUnknownKind)
}
