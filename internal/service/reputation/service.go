package reputation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	ownerRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/owner"
)

// Service рейтинг клиентов: допуск к записи, события, восстановление
//
// Рейтинг всегда вычисляется из счетчиков, поле reputation_score хранит кэш
// и перезаписывается при каждом изменении счетчиков в той же транзакции.
type Service struct {
	ownerRepo       OwnerRepository
	appointmentRepo AppointmentRepository
	txManager       TxManager
	timeProvider    TimeProvider
	settings        Settings
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса рейтинга
func NewService(
	ownerRepo OwnerRepository,
	appointmentRepo AppointmentRepository,
	txManager TxManager,
	timeProvider TimeProvider,
	settings Settings,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		ownerRepo:       ownerRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		settings:        settings,
		metrics:         metrics,
		logger:          logger,
	}
}

// CalculateScore возвращает рейтинг клиента, вычисленный из счетчиков
func (s *Service) CalculateScore(ctx context.Context, tenantID, ownerID uuid.UUID) (int, error) {
	owner, err := s.getOwner(ctx, tenantID, ownerID, "CalculateScore")
	if err != nil {
		return 0, err
	}
	return owner.DerivedReputationScore(), nil
}

// Check возвращает *domain.Rejection, если клиент не может записаться
func (s *Service) Check(ctx context.Context, tenantID, ownerID uuid.UUID) error {
	owner, err := s.getOwner(ctx, tenantID, ownerID, "CanBook")
	if err != nil {
		return err
	}
	return s.check(owner)
}

// CanBook возвращает допуск к записи и причину отказа
func (s *Service) CanBook(ctx context.Context, tenantID, ownerID uuid.UUID) (bool, string, error) {
	err := s.Check(ctx, tenantID, ownerID)
	if err == nil {
		return true, "", nil
	}
	if reason, ok := domain.ReasonOf(err); ok {
		return false, reason, nil
	}
	return false, "", err
}

// RecordEvent увеличивает счетчик события и обновляет кэш рейтинга
// Если ctx уже несет транзакцию, изменения попадают в нее
func (s *Service) RecordEvent(ctx context.Context, tenantID, ownerID uuid.UUID, event Event) (*domain.Owner, error) {
	var owner *domain.Owner
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		owner, err = s.getOwner(ctx, tenantID, ownerID, "RecordEvent")
		if err != nil {
			return err
		}

		switch event {
		case EventNoShow:
			owner.NoShowCount++
		case EventLateCancellation:
			owner.LateCancellationCount++
		case EventCompleted:
			owner.CompletedAppointmentCount++
		default:
			return fmt.Errorf("%w: RecordEvent - unknown event %q", ErrInternal, event)
		}
		owner.RefreshReputation(s.timeProvider.Now())

		if err := s.ownerRepo.UpdateReputation(ctx, owner); err != nil {
			s.logger.Error("RecordEvent: failed to update owner id=%s: %v", ownerID, err)
			return fmt.Errorf("%w: RecordEvent - update owner: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RecordEvent: owner=%s event=%s score=%d", ownerID, event, owner.ReputationScore)
	return owner, nil
}

// Summary возвращает рейтинг, категорию и допуск к записи
func (s *Service) Summary(ctx context.Context, tenantID, ownerID uuid.UUID) (*Summary, error) {
	owner, err := s.getOwner(ctx, tenantID, ownerID, "ReputationSummary")
	if err != nil {
		return nil, err
	}

	stats, err := s.appointmentRepo.OwnerStats(ctx, tenantID, ownerID)
	if err != nil {
		s.logger.Error("ReputationSummary: failed to load stats for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Summary - owner stats: %v", ErrInternal, err)
	}

	score := owner.DerivedReputationScore()
	summary := &Summary{
		OwnerID:                   owner.ID,
		Score:                     score,
		Category:                  domain.CategoryForScore(score),
		CanBook:                   true,
		NoShowCount:               owner.NoShowCount,
		LateCancellationCount:     owner.LateCancellationCount,
		CompletedAppointmentCount: owner.CompletedAppointmentCount,
		TotalAppointments:         stats.Total,
		CompletionRate:            CompletionRate(stats),
		LastReputationUpdate:      owner.LastReputationUpdate,
	}
	if err := s.check(owner); err != nil {
		summary.CanBook = false
		summary.Reason, _ = domain.ReasonOf(err)
	}
	return summary, nil
}

// ListByCategory возвращает клиентов, чей закешированный рейтинг попадает в диапазон категории
func (s *Service) ListByCategory(ctx context.Context, tenantID uuid.UUID, category domain.ReputationCategory) ([]*domain.Owner, error) {
	lo, hi := category.ScoreRange()
	owners, err := s.ownerRepo.ListByScoreRange(ctx, tenantID, lo, hi)
	if err != nil {
		s.logger.Error("CustomersByReputation: failed to list owners for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListByCategory - list owners: %v", ErrInternal, err)
	}
	return owners, nil
}

// CompletionRate процент завершенных записей с округлением до сотых, 0 если записей не было
func CompletionRate(stats *domain.OwnerAppointmentStats) decimal.Decimal {
	if stats == nil || stats.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(stats.Completed)).
		Div(decimal.NewFromInt(int64(stats.Total))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

func (s *Service) check(owner *domain.Owner) error {
	score := owner.DerivedReputationScore()
	if score < s.settings.MinBookingScore {
		s.logger.Info("CanBook: owner=%s score=%d below %d", owner.ID, score, s.settings.MinBookingScore)
		return domain.Reject(ErrScoreTooLow, reasonScoreTooLowFmt, score, s.settings.MinBookingScore)
	}
	return nil
}

func (s *Service) getOwner(ctx context.Context, tenantID, ownerID uuid.UUID, op string) (*domain.Owner, error) {
	owner, err := s.ownerRepo.GetByID(ctx, tenantID, ownerID)
	if err != nil {
		if errors.Is(err, ownerRepo.ErrOwnerNotFound) {
			s.logger.Warn("%s: owner id=%s not found", op, ownerID)
			return nil, domain.Reject(ErrCustomerNotFound, ReasonCustomerNotFound)
		}
		s.logger.Error("%s: failed to get owner id=%s: %v", op, ownerID, err)
		return nil, fmt.Errorf("%w: %s - get owner: %v", ErrInternal, op, err)
	}
	return owner, nil
}
