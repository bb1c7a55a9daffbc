package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/formbridge/formbridge/internal/notify/dispatch"
	"github.com/formbridge/formbridge/internal/observability/metrics"
	"github.com/formbridge/formbridge/internal/submission/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Optional leading +, then 1 to 16 digits.
	phonePattern = regexp.MustCompile(`^\+?[0-9]{1,16}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Queue   dispatch.Queue
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	queue   dispatch.Queue
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("submission.service"),
		repo:    p.Repo,
		queue:   p.Queue,
		metrics: p.Metrics,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (domain.Submission, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if vErr := validate(name, email, phone); vErr != nil {
		return domain.Submission{}, vErr
	}

	submission := domain.Submission{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Company:   strings.TrimSpace(req.Company),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &submission); err != nil {
		s.log.Error("insert submission failed", zap.Error(err))
		return domain.Submission{}, &domain.PersistenceError{Err: err}
	}

	if s.metrics != nil {
		s.metrics.SubmissionsStored.Inc()
	}

	// Delivery runs on the dispatcher's worker; the response never
	// waits on it.
	if s.queue != nil {
		s.queue.Enqueue(submission)
	}

	return submission, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Submission, error) {
	return s.repo.List(ctx, s.db, domain.ListFilter{
		From: req.From,
		To:   req.To,
	})
}

// validate runs every field check so multiple problems are reported
// in one round trip.
func validate(name, email, phone string) error {
	var fields []domain.FieldError

	if name == "" {
		fields = append(fields, domain.FieldError{
			Field:   "name",
			Code:    "required",
			Message: "name is required",
		})
	}
	if phone == "" {
		fields = append(fields, domain.FieldError{
			Field:   "phone",
			Code:    "required",
			Message: "phone is required",
		})
	} else if !phonePattern.MatchString(phone) {
		fields = append(fields, domain.FieldError{
			Field:   "phone",
			Code:    "invalid_phone",
			Message: "phone must be digits with an optional leading +",
		})
	}
	if email != "" && !emailPattern.MatchString(email) {
		fields = append(fields, domain.FieldError{
			Field:   "email",
			Code:    "invalid_email",
			Message: "email must look like local@domain",
		})
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
