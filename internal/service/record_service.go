package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/report"
	"candidate-tracker/pkg/utils"
)

type RecordService struct {
	records domain.RecordRepository
	log     *zap.Logger
	now     func() time.Time

	selfMu sync.Mutex // 自助填报：查找 + 新建/更新 需要一起完成
}

func NewRecordService(records domain.RecordRepository, l *zap.Logger) *RecordService {
	if l == nil {
		l = zap.NewNop()
	}
	return &RecordService{records: records, log: l, now: time.Now}
}

// Submit admin/lead 新建一条；其他角色走自助填报（每个用户一条，重复提交即更新）
func (s *RecordService) Submit(ctx context.Context, actor domain.SessionUser, in domain.RecordInput) (domain.Record, bool, error) {
	if !actor.Role.Elevated() {
		return s.selfReport(ctx, actor, in)
	}
	if strings.TrimSpace(in.CandidateName) == "" {
		return domain.Record{}, false, domain.ErrInvalidInput
	}
	r, err := s.newRecord(in, "", in.CandidateName)
	if err != nil {
		return domain.Record{}, false, err
	}
	if err := s.records.Create(ctx, r); err != nil {
		return domain.Record{}, false, err
	}
	recordOpsTotal.WithLabelValues("create").Inc()
	r.Normalize()
	return r, true, nil
}

func (s *RecordService) selfReport(ctx context.Context, actor domain.SessionUser, in domain.RecordInput) (domain.Record, bool, error) {
	s.selfMu.Lock()
	defer s.selfMu.Unlock()

	existing, err := s.Mine(ctx, actor)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		r, err := s.newRecord(in, actor.ID, actor.Name)
		if err != nil {
			return domain.Record{}, false, err
		}
		if err := s.records.Create(ctx, r); err != nil {
			return domain.Record{}, false, err
		}
		recordOpsTotal.WithLabelValues("create").Inc()
		r.Normalize()
		return r, true, nil
	case err != nil:
		return domain.Record{}, false, err
	}
	// 名字锁定为本人
	in.CandidateName = ""
	r, err := s.records.Update(ctx, existing.ID, domain.PatchFromInput(in), s.now())
	if err != nil {
		return domain.Record{}, false, err
	}
	recordOpsTotal.WithLabelValues("update").Inc()
	return r, false, nil
}

func (s *RecordService) newRecord(in domain.RecordInput, userID, name string) (domain.Record, error) {
	now := s.now()
	date := domain.Day(now)
	if strings.TrimSpace(in.Date) != "" {
		d, err := domain.ParseDate(in.Date)
		if err != nil {
			return domain.Record{}, domain.ErrInvalidInput
		}
		date = d
	}
	return domain.Record{
		ID:                  utils.NewID(),
		UserID:              userID,
		CandidateName:       strings.TrimSpace(name),
		Date:                date,
		MorningApplications: in.MorningApplications,
		Submissions:         in.Submissions,
		Screenings:          in.Screenings,
		Interviews:          in.Interviews,
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// Mine 当前用户自助填报的那条
func (s *RecordService) Mine(ctx context.Context, actor domain.SessionUser) (domain.Record, error) {
	rs, err := s.records.List(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	for _, r := range rs {
		if r.UserID != "" && r.UserID == actor.ID {
			return r, nil
		}
	}
	return domain.Record{}, domain.ErrRecordNotFound
}

// List 按日期倒序
func (s *RecordService) List(ctx context.Context, q report.Query) ([]domain.Record, error) {
	rs, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.SortByDate(report.Filter(rs, q)), nil
}

func (s *RecordService) Update(ctx context.Context, id string, patch domain.RecordPatch) (domain.Record, error) {
	r, err := s.records.Update(ctx, id, patch, s.now())
	if err != nil {
		return domain.Record{}, err
	}
	recordOpsTotal.WithLabelValues("update").Inc()
	return r, nil
}

// Delete id 不存在也返回 nil
func (s *RecordService) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	recordOpsTotal.WithLabelValues("delete").Inc()
	return nil
}

func (s *RecordService) CandidateNames(ctx context.Context) ([]string, error) {
	rs, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.CandidateNames(rs), nil
}
