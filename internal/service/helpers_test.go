package service

import (
	"testing"
	"time"

	"candidate-tracker/internal/core/auth"
	"candidate-tracker/internal/core/blob"
	"candidate-tracker/internal/repo"
)

type fixture struct {
	store   *blob.Memory
	users   *UserService
	auth    *AuthService
	records *RecordService
	reports *ReportService
	jwt     *auth.JWTer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := blob.NewMemory()
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "tracker-test", TTL: time.Hour}
	users := NewUserService(repo.NewUserRepo(s, nil), SeedAdmin{}, nil)
	recRepo := repo.NewRecordRepo(s, nil)
	return &fixture{
		store:   s,
		users:   users,
		auth:    NewAuthService(users, repo.NewSessionRepo(s, nil), j, nil),
		records: NewRecordService(recRepo, nil),
		reports: NewReportService(recRepo, nil, nil),
		jwt:     j,
	}
}
