package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
)

// Service жизненный цикл записи: подтверждение, прибытие, завершение, отмена
type Service struct {
	appointmentRepo AppointmentRepository
	reputation      ReputationRecorder
	txManager       TxManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	appointmentRepo AppointmentRepository,
	reputation ReputationRecorder,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		reputation:      reputation,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Confirm подтверждает запись
func (s *Service) Confirm(ctx context.Context, tenantID, id uuid.UUID) (*Result, error) {
	return s.transition(ctx, "Confirm", tenantID, id, domain.AppointmentConfirmed, nil)
}

// CheckIn отмечает прибытие клиента, запись переходит в in_progress
func (s *Service) CheckIn(ctx context.Context, tenantID, id uuid.UUID) (*Result, error) {
	return s.transition(ctx, "CheckIn", tenantID, id, domain.AppointmentInProgress,
		func(a *domain.Appointment, now time.Time) (reputation.Event, bool) {
			a.ArrivedAt = &now
			return "", false
		})
}

// Complete завершает запись и увеличивает счетчик завершенных визитов клиента
func (s *Service) Complete(ctx context.Context, tenantID, id uuid.UUID) (*Result, error) {
	return s.transition(ctx, "Complete", tenantID, id, domain.AppointmentCompleted,
		func(*domain.Appointment, time.Time) (reputation.Event, bool) {
			return reputation.EventCompleted, true
		})
}

// Cancel отменяет запись
// Отмена клиентом менее чем за 24 часа до начала считается поздней и снижает рейтинг
func (s *Service) Cancel(ctx context.Context, tenantID, id uuid.UUID, req CancelRequest) (*Result, error) {
	return s.transition(ctx, "Cancel", tenantID, id, domain.AppointmentCancelled,
		func(a *domain.Appointment, now time.Time) (reputation.Event, bool) {
			a.CancelledAt = &now
			a.CancelledByCustomer = req.ByCustomer
			if req.Reason != "" {
				reason := req.Reason
				a.CancellationReason = &reason
			}
			if req.ByCustomer && a.IsLateCancellation(now) {
				return reputation.EventLateCancellation, true
			}
			return "", false
		})
}

// mutateFunc дополняет запись перед сохранением и возвращает событие рейтинга
type mutateFunc func(a *domain.Appointment, now time.Time) (reputation.Event, bool)

func (s *Service) transition(
	ctx context.Context,
	op string,
	tenantID, id uuid.UUID,
	next domain.AppointmentStatus,
	mutate mutateFunc,
) (*Result, error) {
	var result Result
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Запись (строка блокируется до конца транзакции)
		appt, err := s.appointmentRepo.GetByID(ctx, tenantID, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return domain.Reject(ErrAppointmentNotFound, ReasonAppointmentNotFound)
			}
			return fmt.Errorf("%w: %s - get appointment: %v", ErrInternal, op, err)
		}

		// 2. Допустимость перехода
		if !appt.Status.CanTransitionTo(next) {
			return domain.Reject(ErrInvalidTransition, reasonTransitionFmt, appt.Status, next)
		}

		// 3. Новый статус
		appt.Status = next
		var (
			event    reputation.Event
			hasEvent bool
		)
		if mutate != nil {
			event, hasEvent = mutate(appt, s.timeProvider.Now())
		}
		if err := s.appointmentRepo.UpdateStatus(ctx, appt); err != nil {
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}

		// 4. Счетчики клиента в той же транзакции
		if hasEvent {
			if _, err := s.reputation.RecordEvent(ctx, tenantID, appt.OwnerID, event); err != nil {
				return err
			}
			result.LateCancellation = event == reputation.EventLateCancellation
		}

		result.Appointment = appt
		return nil
	})
	if err != nil {
		if reason, ok := domain.ReasonOf(err); ok {
			s.logger.Warn("%s: tenant=%s appointment=%s rejected: %s", op, tenantID, id, reason)
		} else {
			s.logger.Error("%s: tenant=%s appointment=%s failed: %v", op, tenantID, id, err)
		}
		return nil, err
	}

	s.logger.Info("%s: tenant=%s appointment=%s status=%s", op, tenantID, id, next)
	return &result, nil
}
