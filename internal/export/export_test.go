package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"candidate-tracker/internal/domain"
)

func sample() []domain.Record {
	d := func(n int) time.Time { return time.Date(2026, 4, n, 0, 0, 0, 0, time.UTC) }
	return []domain.Record{
		{ID: "1", CandidateName: "Murali", Date: d(1), MorningApplications: domain.Yes, Submissions: 2, Interviews: 1, Notes: "first"},
		{ID: "2", CandidateName: "Anil/Varma", Date: d(2), Screenings: 3},
		{ID: "3", CandidateName: "Murali", Date: d(3), Submissions: 3, Interviews: 1},
	}
}

func TestParse(t *testing.T) {
	k, err := ParseKind("Summary")
	require.NoError(t, err)
	assert.Equal(t, KindSummary, k)
	_, err = ParseKind("pdf")
	assert.ErrorIs(t, err, ErrUnknownKind)

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = ParseFormat("ods")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build("nope", FormatXLSX, sample())
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = Build(KindAll, "ods", sample())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBuildAllXLSX(t *testing.T) {
	f, err := Build(KindAll, FormatXLSX, sample())
	require.NoError(t, err)
	assert.Equal(t, "all_candidates_data.xlsx", f.Name)
	assert.Equal(t, ContentTypeXLSX, f.ContentType)

	x, err := excelize.OpenReader(bytes.NewReader(f.Body))
	require.NoError(t, err)
	defer x.Close()
	assert.Equal(t, []string{"Data"}, x.GetSheetList())

	rows, err := x.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, AllHeaders, rows[0])
	assert.Equal(t, "04/01/2026", rows[1][0])
	assert.Equal(t, "Murali", rows[1][1])
	assert.Equal(t, "yes", rows[1][2])
	assert.Equal(t, "2", rows[1][3])
}

func TestBuildSummaryCSV(t *testing.T) {
	f, err := Build(KindSummary, FormatCSV, sample())
	require.NoError(t, err)
	assert.Equal(t, "candidate_summary.csv", f.Name)

	rows, err := csv.NewReader(bytes.NewReader(f.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, SummaryHeaders, rows[0])
	// Murali: morning 1 + subs 5 + interviews 2 = 8, rate 25
	assert.Equal(t, []string{"Murali", "1", "5", "0", "2", "8", "25"}, rows[1])
	assert.Equal(t, []string{"Anil/Varma", "0", "0", "3", "0", "3", "0"}, rows[2])
}

func TestBuildIndividualXLSX(t *testing.T) {
	f, err := Build(KindIndividual, FormatXLSX, sample())
	require.NoError(t, err)
	assert.Equal(t, "candidate_progress.xlsx", f.Name)

	x, err := excelize.OpenReader(bytes.NewReader(f.Body))
	require.NoError(t, err)
	defer x.Close()
	assert.Equal(t, []string{"Murali", "Anil_Varma"}, x.GetSheetList())

	rows, err := x.GetRows("Murali")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, IndividualHeaders, rows[0])
}

func TestBuildIndividualCSVZip(t *testing.T) {
	f, err := Build(KindIndividual, FormatCSV, sample())
	require.NoError(t, err)
	assert.Equal(t, "candidate_progress.zip", f.Name)
	assert.Equal(t, ContentTypeZIP, f.ContentType)

	zr, err := zip.NewReader(bytes.NewReader(f.Body), int64(len(f.Body)))
	require.NoError(t, err)
	names := []string{}
	for _, zf := range zr.File {
		names = append(names, zf.Name)
	}
	assert.Equal(t, []string{"Murali_progress.csv", "Anil-Varma_progress.csv"}, names)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestBuildEmpty(t *testing.T) {
	for _, k := range []Kind{KindAll, KindSummary, KindIndividual} {
		for _, fm := range []Format{FormatXLSX, FormatCSV} {
			f, err := Build(k, fm, nil)
			require.NoErrorf(t, err, "%s/%s", k, fm)
			assert.NotEmpty(t, f.Body)
		}
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "a_b", sheetName("a[b", used))
	assert.Equal(t, "A_B (2)", sheetName("A:B", used))
	long := sheetName("Edara Chandra Shekar Venkata Subrahmanyam", used)
	assert.LessOrEqual(t, len([]rune(long)), maxSheetName)
	assert.Equal(t, "Sheet", sheetName("''", used))

	// 截断后末尾是 '
	name := strings.Repeat("a", 30) + "'b"
	got := sheetName(name, used)
	assert.Equal(t, strings.Repeat("a", 30), got)
	got = sheetName(name, used)
	assert.False(t, strings.HasSuffix(got, "'"))
	assert.Equal(t, strings.Repeat("a", 27)+" (2)", got)

	dup := strings.Repeat("b", 26) + "'cc"
	assert.Equal(t, dup, sheetName(dup, used))
	assert.Equal(t, strings.Repeat("b", 26)+" (2)", sheetName(dup, used))
}

func TestBuildIndividualXLSXQuoteAtLimit(t *testing.T) {
	recs := []domain.Record{{ID: "1", CandidateName: strings.Repeat("a", 30) + "'b", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}}
	f, err := Build(KindIndividual, FormatXLSX, recs)
	require.NoError(t, err)

	x, err := excelize.OpenReader(bytes.NewReader(f.Body))
	require.NoError(t, err)
	defer x.Close()
	assert.Equal(t, []string{strings.Repeat("a", 30)}, x.GetSheetList())
}
