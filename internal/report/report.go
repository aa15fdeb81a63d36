// Package report 纯函数，不改输入切片
package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"candidate-tracker/internal/domain"
)

const (
	DashboardWindow = 5
	ChartWindow     = 10
	TimelineWindow  = 20
)

type Summary struct {
	CandidateName       string `json:"candidateName"`
	MorningApplications int    `json:"morningApplications"`
	Submissions         int    `json:"submissions"`
	Screenings          int    `json:"screenings"`
	Interviews          int    `json:"interviews"`
	TotalActivity       int    `json:"totalActivity"`
	SuccessRate         int    `json:"successRate"`
}

// Totals 不按姓名合并，逐条累加
type Totals struct {
	Records             int `json:"records"`
	MorningApplications int `json:"morningApplications"`
	Submissions         int `json:"submissions"`
	Screenings          int `json:"screenings"`
	Interviews          int `json:"interviews"`
	TotalActivity       int `json:"totalActivity"`
}

func SuccessRate(interviews, total int) int {
	if total <= 0 {
		return 0
	}
	r := int(math.Floor(float64(interviews)/float64(total)*100 + 0.5))
	return min(max(r, 0), 100)
}

// FoldByCandidate 按姓名合并，总活动量降序，同值保持首次出现顺序
func FoldByCandidate(records []domain.Record) []Summary {
	idx := make(map[string]int)
	out := make([]Summary, 0)
	for _, r := range records {
		i, ok := idx[r.CandidateName]
		if !ok {
			i = len(out)
			idx[r.CandidateName] = i
			out = append(out, Summary{CandidateName: r.CandidateName})
		}
		s := &out[i]
		s.MorningApplications += r.MorningApplications.Count()
		s.Submissions += int(r.Submissions)
		s.Screenings += int(r.Screenings)
		s.Interviews += int(r.Interviews)
	}
	for i := range out {
		s := &out[i]
		s.TotalActivity = s.MorningApplications + s.Submissions + s.Screenings + s.Interviews
		s.SuccessRate = SuccessRate(s.Interviews, s.TotalActivity)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalActivity > out[j].TotalActivity })
	return out
}

func Overall(records []domain.Record) Totals {
	var t Totals
	for _, r := range records {
		t.Records++
		t.MorningApplications += r.MorningApplications.Count()
		t.Submissions += int(r.Submissions)
		t.Screenings += int(r.Screenings)
		t.Interviews += int(r.Interviews)
	}
	t.TotalActivity = t.MorningApplications + t.Submissions + t.Screenings + t.Interviews
	return t
}

// SortByDate 日期降序的拷贝，稳定排序
func SortByDate(records []domain.Record) []domain.Record {
	out := append([]domain.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func Recent(records []domain.Record, n int) []domain.Record {
	out := SortByDate(records)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type Query struct {
	Search string     // 姓名子串，忽略大小写
	Date   *time.Time // 同一天
	UserID string     // 仅该用户自报的记录
}

func Filter(records []domain.Record, q Query) []domain.Record {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.CandidateName), needle) {
			continue
		}
		if q.Date != nil && !sameDay(r.Date, *q.Date) {
			continue
		}
		if q.UserID != "" && r.UserID != q.UserID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func CandidateNames(records []domain.Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.CandidateName]; ok {
			continue
		}
		seen[r.CandidateName] = struct{}{}
		out = append(out, r.CandidateName)
	}
	return out
}

type DashboardView struct {
	Totals Totals          `json:"totals"`
	Recent []domain.Record `json:"recent"`
}

func Dashboard(records []domain.Record, window int) DashboardView {
	return DashboardView{Totals: Overall(records), Recent: Recent(records, window)}
}

type AnalyticsView struct {
	Summaries []Summary       `json:"summaries"`
	Totals    Totals          `json:"totals"`
	Chart     []Summary       `json:"chart"`
	Timeline  []domain.Record `json:"timeline"`
}

func Analytics(records []domain.Record) AnalyticsView {
	sums := FoldByCandidate(records)
	chart := sums
	if len(chart) > ChartWindow {
		chart = chart[:ChartWindow]
	}
	return AnalyticsView{
		Summaries: sums,
		Totals:    Overall(records),
		Chart:     chart,
		Timeline:  Recent(records, TimelineWindow),
	}
}
