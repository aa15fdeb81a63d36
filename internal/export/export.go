// Package export 把报表投影写成可下载文件（xlsx / csv）
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/report"
)

var (
	ErrUnknownKind   = errors.New("unknown export kind")
	ErrUnknownFormat = errors.New("unknown export format")
)

type Kind string

const (
	KindAll        Kind = "all"
	KindSummary    Kind = "summary"
	KindIndividual Kind = "individual"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeZIP  = "application/zip"
)

var baseNames = map[Kind]string{
	KindAll:        "all_candidates_data",
	KindSummary:    "candidate_summary",
	KindIndividual: "candidate_progress",
}

var (
	AllHeaders = []string{
		"Date", "Candidate Name", "Morning Applications", "Submissions", "Screenings",
		"Interviews", "Notes", "Created At", "Updated At",
	}
	SummaryHeaders = []string{
		"Candidate Name", "Morning Applications", "Submissions", "Screenings",
		"Interviews", "Total Activity", "Success Rate (%)",
	}
	IndividualHeaders = []string{
		"Date", "Morning Applications", "Submissions", "Screenings", "Interviews", "Notes",
	}
)

// File 完整生成后才返回，失败时不会有半个文件
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Archiver 导出文件的额外归档（可选）
type Archiver interface {
	Archive(ctx context.Context, f File) (string, error)
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := baseNames[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatXLSX, nil
	case FormatXLSX, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// table 一张表 / 一个 sheet
type table struct {
	name   string
	header []string
	rows   [][]any
}

func tables(kind Kind, records []domain.Record) ([]table, error) {
	switch kind {
	case KindAll:
		t := table{name: "Data", header: AllHeaders}
		for _, r := range report.AllRows(records) {
			t.rows = append(t.rows, []any{
				r.Date, r.CandidateName, r.MorningApplications, r.Submissions, r.Screenings,
				r.Interviews, r.Notes, r.CreatedAt, r.UpdatedAt,
			})
		}
		return []table{t}, nil
	case KindSummary:
		t := table{name: "Data", header: SummaryHeaders}
		for _, s := range report.SummaryRows(records) {
			t.rows = append(t.rows, []any{
				s.CandidateName, s.MorningApplications, s.Submissions, s.Screenings,
				s.Interviews, s.TotalActivity, s.SuccessRate,
			})
		}
		return []table{t}, nil
	case KindIndividual:
		sheets := report.IndividualSheets(records)
		if len(sheets) == 0 {
			return []table{{name: "Data", header: IndividualHeaders}}, nil
		}
		out := make([]table, 0, len(sheets))
		for _, s := range sheets {
			t := table{name: s.CandidateName, header: IndividualHeaders}
			for _, r := range s.Rows {
				t.rows = append(t.rows, []any{
					r.Date, r.MorningApplications, r.Submissions, r.Screenings, r.Interviews, r.Notes,
				})
			}
			out = append(out, t)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Build 生成导出文件
func Build(kind Kind, format Format, records []domain.Record) (File, error) {
	base, ok := baseNames[kind]
	if !ok {
		return File{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	ts, err := tables(kind, records)
	if err != nil {
		return File{}, err
	}
	switch format {
	case FormatXLSX:
		body, err := writeXLSX(ts)
		if err != nil {
			return File{}, fmt.Errorf("write xlsx: %w", err)
		}
		return File{Name: base + ".xlsx", ContentType: ContentTypeXLSX, Body: body}, nil
	case FormatCSV:
		if kind == KindIndividual {
			body, err := writeCSVZip(ts)
			if err != nil {
				return File{}, fmt.Errorf("write csv zip: %w", err)
			}
			return File{Name: base + ".zip", ContentType: ContentTypeZIP, Body: body}, nil
		}
		body, err := writeCSV(ts[0])
		if err != nil {
			return File{}, fmt.Errorf("write csv: %w", err)
		}
		return File{Name: base + ".csv", ContentType: ContentTypeCSV, Body: body}, nil
	}
	return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
