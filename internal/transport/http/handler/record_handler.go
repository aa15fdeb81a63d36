package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"candidate-tracker/internal/domain"
	"candidate-tracker/internal/report"
	"candidate-tracker/internal/service"
	httpez "candidate-tracker/internal/transport/http/ez"
)

type RecordHandler struct {
	records *service.RecordService
	log     *zap.Logger
}

func NewRecordHandler(s *service.RecordService, l *zap.Logger) *RecordHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &RecordHandler{records: s, log: l}
}

type submitOut struct {
	Record  domain.Record `json:"record"`
	Created bool          `json:"created"`
}

type listQ struct {
	Q    string `form:"q"`
	Date string `form:"date"` // YYYY-MM-DD
}

type listOut struct {
	Total int             `json:"total"`
	Items []domain.Record `json:"items"`
}

func (h *RecordHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	httpez.Register(ez, httpez.Action[domain.RecordInput, submitOut]{
		Method: http.MethodPost,
		Path:   "/records",
		Binder: httpez.BindJSON,
		Perms:  []domain.Permission{domain.PermSubmitRecord},
		Handler: func(c *gin.Context, in *domain.RecordInput) (submitOut, error) {
			r, created, err := h.records.Submit(c.Request.Context(), httpez.Actor(c), *in)
			if err != nil {
				return submitOut{}, err
			}
			return submitOut{Record: r, Created: created}, nil
		},
	})

	// 没填报过时 data 为 null
	httpez.Register(ez, httpez.Action[struct{}, *domain.Record]{
		Method: http.MethodGet,
		Path:   "/records/mine",
		Binder: httpez.BindNone,
		Perms:  []domain.Permission{domain.PermSubmitRecord},
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Record, error) {
			r, err := h.records.Mine(c.Request.Context(), httpez.Actor(c))
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &r, nil
		},
	})

	httpez.Register(ez, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/records",
		Binder: httpez.BindQuery,
		Perms:  []domain.Permission{domain.PermListRecords},
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			q := report.Query{Search: in.Q}
			if s := strings.TrimSpace(in.Date); s != "" {
				d, err := domain.ParseDate(s)
				if err != nil {
					return listOut{}, httpez.BadRequest("date must be YYYY-MM-DD")
				}
				q.Date = &d
			}
			rs, err := h.records.List(c.Request.Context(), q)
			if err != nil {
				return listOut{}, err
			}
			return listOut{Total: len(rs), Items: rs}, nil
		},
	})

	httpez.Register(ez, httpez.Action[domain.RecordPatch, domain.Record]{
		Method: http.MethodPut,
		Path:   "/records/:id",
		Binder: httpez.BindJSON,
		Perms:  []domain.Permission{domain.PermEditRecords},
		Handler: func(c *gin.Context, in *domain.RecordPatch) (domain.Record, error) {
			return h.records.Update(c.Request.Context(), c.Param("id"), *in)
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/records/:id",
		Binder: httpez.BindNone,
		Perms:  []domain.Permission{domain.PermEditRecords},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := h.records.Delete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})

	httpez.Register(ez, httpez.Action[struct{}, []string]{
		Method: http.MethodGet,
		Path:   "/candidates/names",
		Binder: httpez.BindNone,
		Perms:  []domain.Permission{domain.PermListRecords},
		Handler: func(c *gin.Context, _ *struct{}) ([]string, error) {
			return h.records.CandidateNames(c.Request.Context())
		},
	})
}
