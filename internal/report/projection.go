package report

import (
	"time"

	"candidate-tracker/internal/domain"
)

// DisplayDateLayout 导出表格里的日期格式 MM/dd/yyyy
const DisplayDateLayout = "01/02/2006"

type RawRow struct {
	Date                string
	CandidateName       string
	MorningApplications string
	Submissions         int
	Screenings          int
	Interviews          int
	Notes               string
	CreatedAt           string
	UpdatedAt           string
}

type IndividualRow struct {
	Date                string
	MorningApplications string
	Submissions         int
	Screenings          int
	Interviews          int
	Notes               string
}

type CandidateSheet struct {
	CandidateName string
	Rows          []IndividualRow
}

func displayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

func AllRows(records []domain.Record) []RawRow {
	out := make([]RawRow, 0, len(records))
	for _, r := range records {
		out = append(out, RawRow{
			Date:                displayDate(r.Date),
			CandidateName:       r.CandidateName,
			MorningApplications: string(r.MorningApplications),
			Submissions:         int(r.Submissions),
			Screenings:          int(r.Screenings),
			Interviews:          int(r.Interviews),
			Notes:               r.Notes,
			CreatedAt:           displayDate(r.CreatedAt),
			UpdatedAt:           displayDate(r.UpdatedAt),
		})
	}
	return out
}

func SummaryRows(records []domain.Record) []Summary { return FoldByCandidate(records) }

// IndividualSheets 每个候选人一张表，按首次出现顺序
func IndividualSheets(records []domain.Record) []CandidateSheet {
	names := CandidateNames(records)
	idx := make(map[string]int, len(names))
	out := make([]CandidateSheet, len(names))
	for i, n := range names {
		idx[n] = i
		out[i] = CandidateSheet{CandidateName: n, Rows: []IndividualRow{}}
	}
	for _, r := range records {
		s := &out[idx[r.CandidateName]]
		s.Rows = append(s.Rows, IndividualRow{
			Date:                displayDate(r.Date),
			MorningApplications: string(r.MorningApplications),
			Submissions:         int(r.Submissions),
			Screenings:          int(r.Screenings),
			Interviews:          int(r.Interviews),
			Notes:               r.Notes,
		})
	}
	return out
}
