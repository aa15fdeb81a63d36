package service

import (
	"context"

	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/export"
	"candidate-tracker/internal/report"
)

type ReportService struct {
	records  domain.RecordRepository
	archiver export.Archiver // 可为 nil
	log      *zap.Logger
}

func NewReportService(records domain.RecordRepository, archiver export.Archiver, l *zap.Logger) *ReportService {
	if l == nil {
		l = zap.NewNop()
	}
	return &ReportService{records: records, archiver: archiver, log: l}
}

// Dashboard 非 admin/lead 只看到自己填报的数据
func (s *ReportService) Dashboard(ctx context.Context, actor domain.SessionUser) (report.DashboardView, error) {
	rs, err := s.records.List(ctx)
	if err != nil {
		return report.DashboardView{}, err
	}
	if !actor.Role.Elevated() {
		rs = report.Filter(rs, report.Query{UserID: actor.ID})
	}
	return report.Dashboard(rs, report.DashboardWindow), nil
}

func (s *ReportService) Analytics(ctx context.Context) (report.AnalyticsView, error) {
	rs, err := s.records.List(ctx)
	if err != nil {
		return report.AnalyticsView{}, err
	}
	return report.Analytics(rs), nil
}

// Export 归档失败只记日志，不影响下载
func (s *ReportService) Export(ctx context.Context, kind export.Kind, format export.Format) (f export.File, err error) {
	defer func() { exportTotal.WithLabelValues(string(kind), string(format), result(err)).Inc() }()

	rs, err := s.records.List(ctx)
	if err != nil {
		return export.File{}, err
	}
	f, err = export.Build(kind, format, rs)
	if err != nil {
		return export.File{}, err
	}
	if s.archiver != nil {
		loc, aerr := s.archiver.Archive(ctx, f)
		if aerr != nil {
			s.log.Warn("archive export failed", zap.String("file", f.Name), zap.Error(aerr))
		} else {
			s.log.Info("export archived", zap.String("file", f.Name), zap.String("location", loc))
		}
	}
	return f, nil
}
