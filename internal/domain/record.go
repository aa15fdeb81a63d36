package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// DateLayout 表单/查询里的日历日期格式
const DateLayout = "2006-01-02"

type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

// ParseYesNo 除 "yes" 以外一律视为 "no"
func ParseYesNo(s string) YesNo {
	if s == string(Yes) {
		return Yes
	}
	return No
}

// Count 汇总时 yes 记 1
func (y YesNo) Count() int {
	if y == Yes {
		return 1
	}
	return 0
}

func (y *YesNo) UnmarshalJSON(b []byte) error {
	s := string(b)
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	*y = ParseYesNo(s)
	return nil
}

// Count 非负整数；解析失败或缺省为 0
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	*c = Count(ParseCount(s))
	return nil
}

// ParseCount 取前导整数部分（"12abc" -> 12），负数与无数字都返回 0
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ParseDate 接受 2006-01-02 或 RFC3339，统一成 UTC 当天零点
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return Day(t), nil
}

// Day 截断到日历日
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Record struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId,omitempty"` // 仅候选人自助填报时有值
	CandidateName       string    `json:"candidateName"`
	Date                time.Time `json:"date"`
	MorningApplications YesNo     `json:"morningApplications"`
	Submissions         Count     `json:"submissions"`
	Screenings          Count     `json:"screenings"`
	Interviews          Count     `json:"interviews"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Normalize 写入前统一字段
func (r *Record) Normalize() {
	r.CandidateName = strings.TrimSpace(r.CandidateName)
	r.MorningApplications = ParseYesNo(string(r.MorningApplications))
	r.Submissions = clamp(r.Submissions)
	r.Screenings = clamp(r.Screenings)
	r.Interviews = clamp(r.Interviews)
}

func clamp(c Count) Count {
	if c < 0 {
		return 0
	}
	return c
}

// RecordInput 表单提交
type RecordInput struct {
	CandidateName       string `json:"candidateName"`
	Date                string `json:"date"`
	MorningApplications YesNo  `json:"morningApplications"`
	Submissions         Count  `json:"submissions"`
	Screenings          Count  `json:"screenings"`
	Interviews          Count  `json:"interviews"`
	Notes               string `json:"notes"`
}

// RecordPatch nil 字段保持不变
type RecordPatch struct {
	CandidateName       *string `json:"candidateName"`
	Date                *string `json:"date"`
	MorningApplications *YesNo  `json:"morningApplications"`
	Submissions         *Count  `json:"submissions"`
	Screenings          *Count  `json:"screenings"`
	Interviews          *Count  `json:"interviews"`
	Notes               *string `json:"notes"`
}

// PatchFromInput 整表单覆盖（候选人再次提交时使用）
func PatchFromInput(in RecordInput) RecordPatch {
	p := RecordPatch{
		MorningApplications: &in.MorningApplications,
		Submissions:         &in.Submissions,
		Screenings:          &in.Screenings,
		Interviews:          &in.Interviews,
		Notes:               &in.Notes,
	}
	if in.CandidateName != "" {
		p.CandidateName = &in.CandidateName
	}
	if in.Date != "" {
		p.Date = &in.Date
	}
	return p
}

// Apply 修改 r；id/userId/createdAt 不受影响
func (p RecordPatch) Apply(r *Record) error {
	if p.CandidateName != nil {
		name := strings.TrimSpace(*p.CandidateName)
		if name == "" {
			return ErrInvalidInput
		}
		r.CandidateName = name
	}
	if p.Date != nil {
		d, err := ParseDate(*p.Date)
		if err != nil {
			return ErrInvalidInput
		}
		r.Date = d
	}
	if p.MorningApplications != nil {
		r.MorningApplications = *p.MorningApplications
	}
	if p.Submissions != nil {
		r.Submissions = *p.Submissions
	}
	if p.Screenings != nil {
		r.Screenings = *p.Screenings
	}
	if p.Interviews != nil {
		r.Interviews = *p.Interviews
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	r.Normalize()
	return nil
}

// RecordRepository 读全量 -> 内存修改 -> 写全量。
// 同进程内串行；多进程共享同一后端时最后写入者覆盖，没有事务。
type RecordRepository interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, r Record) error
	// Update id 不存在时返回 ErrRecordNotFound，集合不变
	Update(ctx context.Context, id string, patch RecordPatch, now time.Time) (Record, error)
	// Delete id 不存在时不报错
	Delete(ctx context.Context, id string) error
}
