package noshow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	paymentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/payment"
)

const smsTemplate = "Hi %s, you missed your appointment on %s. " +
	"A no-show fee of $%s has been applied to your account. " +
	"To avoid future fees, please cancel at least 24 hours in advance."

// Service сервис неявок: поиск, отметка, штрафы
type Service struct {
	appointmentRepo AppointmentRepository
	ownerRepo       OwnerRepository
	paymentRepo     PaymentRepository
	txManager       TxManager
	sms             SMSSender
	timeProvider    TimeProvider
	settings        Settings
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса неявок
func NewService(
	appointmentRepo AppointmentRepository,
	ownerRepo OwnerRepository,
	paymentRepo PaymentRepository,
	txManager TxManager,
	sms SMSSender,
	timeProvider TimeProvider,
	settings Settings,
	metrics Metrics,
	logger Logger,
) *Service {
	if len(settings.FeeSchedule) == 0 {
		settings.FeeSchedule = domain.DefaultNoShowFeeSchedule
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		ownerRepo:       ownerRepo,
		paymentRepo:     paymentRepo,
		txManager:       txManager,
		sms:             sms,
		timeProvider:    timeProvider,
		settings:        settings,
		metrics:         metrics,
		logger:          logger,
	}
}

// Detect возвращает записи, по которым клиент не пришел
// Отрицательный graceMinutes означает значение из настроек
func (s *Service) Detect(ctx context.Context, tenantID uuid.UUID, graceMinutes int) ([]*domain.Appointment, error) {
	if graceMinutes < 0 {
		graceMinutes = s.settings.GraceMinutes
	}
	cutoff := s.timeProvider.Now().Add(-time.Duration(graceMinutes) * time.Minute)

	candidates, err := s.appointmentRepo.ListNoShowCandidates(ctx, tenantID, cutoff)
	if err != nil {
		s.logger.Error("DetectNoShows: tenant=%s repository error: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Detect - list candidates: %v", ErrInternal, err)
	}

	s.logger.Info("DetectNoShows: tenant=%s found %d candidates before %s", tenantID, len(candidates), cutoff.Format("2006-01-02 15:04"))
	return candidates, nil
}

// MarkAsNoShow отмечает запись как неявку
//
// Отметка, платеж штрафа и счетчик клиента пишутся в одной транзакции.
// SMS отправляется после фиксации и не влияет на результат.
func (s *Service) MarkAsNoShow(ctx context.Context, tenant *domain.Tenant, appointmentID uuid.UUID, applyFee bool) (*MarkResult, error) {
	applyFee = applyFee && s.settings.FeeEnabled
	now := s.timeProvider.Now()

	var (
		result MarkResult
		owner  *domain.Owner
	)
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Запись
		appt, err := s.appointmentRepo.GetByID(ctx, tenant.ID, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return domain.Reject(ErrAppointmentNotFound, ReasonAppointmentNotFound)
			}
			return fmt.Errorf("%w: MarkAsNoShow - get appointment: %v", ErrInternal, err)
		}

		// 2. Повторная отметка
		if appt.IsNoShow {
			return domain.Reject(ErrAlreadyMarked, ReasonAlreadyMarked)
		}
		if !appt.Status.CanTransitionTo(domain.AppointmentNoShow) {
			return domain.Reject(ErrInvalidTransition, reasonTransitionFmt, appt.Status, domain.AppointmentNoShow)
		}

		// 3. Клиент (строка блокируется до конца транзакции)
		owner, err = s.getOwner(ctx, tenant.ID, appt.OwnerID, "MarkAsNoShow")
		if err != nil {
			return err
		}

		// 4. Отметка записи
		var fee int64
		if applyFee {
			fee = FeeForCount(s.settings.FeeSchedule, owner.NoShowCount)
		}
		appt.NoShowMarkedAt = &now
		appt.NoShowFeeCharged = fee
		if err := s.appointmentRepo.MarkNoShow(ctx, appt); err != nil {
			if errors.Is(err, appointmentRepo.ErrNotUpdated) {
				return domain.Reject(ErrAlreadyMarked, ReasonAlreadyMarked)
			}
			return fmt.Errorf("%w: MarkAsNoShow - mark appointment: %v", ErrInternal, err)
		}
		appt.IsNoShow = true
		appt.Status = domain.AppointmentNoShow
		result.Appointment = appt

		if !applyFee {
			return nil
		}

		// 5. Платеж штрафа
		apptID := appt.ID
		payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
			TenantID:      tenant.ID,
			OwnerID:       owner.ID,
			AppointmentID: &apptID,
			Type:          domain.PaymentTypeNoShowFee,
			Status:        domain.PaymentPending,
			AmountCents:   fee,
			Description:   fmt.Sprintf("No-show fee for appointment %s", appt.ID),
		})
		if err != nil {
			return fmt.Errorf("%w: MarkAsNoShow - create payment: %v", ErrInternal, err)
		}
		result.FeeCents = fee
		result.PaymentID = &payment.ID

		// 6. Счетчик и кэш рейтинга клиента
		owner.NoShowCount++
		owner.RefreshReputation(now)
		if err := s.ownerRepo.UpdateReputation(ctx, owner); err != nil {
			return fmt.Errorf("%w: MarkAsNoShow - update owner: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if reason, ok := domain.ReasonOf(err); ok {
			s.logger.Warn("MarkAsNoShow: tenant=%s appointment=%s rejected: %s", tenant.ID, appointmentID, reason)
		} else {
			s.logger.Error("MarkAsNoShow: tenant=%s appointment=%s failed: %v", tenant.ID, appointmentID, err)
		}
		return nil, err
	}

	s.metrics.RecordNoShow(applyFee)
	s.logger.Info("MarkAsNoShow: tenant=%s appointment=%s marked, fee=%d", tenant.ID, appointmentID, result.FeeCents)

	if applyFee && owner.CanReceiveSMS() {
		result.SMSSent = s.notify(ctx, tenant, owner, result.Appointment, result.FeeCents)
	}

	return &result, nil
}

// WaiveFee списывает штраф за неявку с указанием причины
func (s *Service) WaiveFee(ctx context.Context, tenantID, appointmentID uuid.UUID, reason string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Запись должна быть отмечена как неявка
		appt, err := s.appointmentRepo.GetByID(ctx, tenantID, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return domain.Reject(ErrAppointmentNotFound, ReasonAppointmentNotFound)
			}
			return fmt.Errorf("%w: WaiveFee - get appointment: %v", ErrInternal, err)
		}
		if !appt.IsNoShow {
			return domain.Reject(ErrNotNoShow, ReasonNotNoShow)
		}

		// 2. Платеж штрафа (может отсутствовать, если неявка отмечена без штрафа)
		payment, err := s.paymentRepo.GetByAppointment(ctx, tenantID, appointmentID, domain.PaymentTypeNoShowFee)
		switch {
		case errors.Is(err, paymentRepo.ErrPaymentNotFound):
		case err != nil:
			return fmt.Errorf("%w: WaiveFee - get payment: %v", ErrInternal, err)
		case payment.Status == domain.PaymentWaived:
			return domain.Reject(ErrFeeAlreadyWaived, ReasonFeeAlreadyWaived)
		case !payment.Status.CanTransitionTo(domain.PaymentWaived):
			return domain.Reject(ErrInvalidTransition, reasonWaiveStatusFmt, payment.Status)
		default:
			notes := fmt.Sprintf("Fee waived: %s", reason)
			payment.Status = domain.PaymentWaived
			payment.Notes = &notes
			if err := s.paymentRepo.UpdateStatus(ctx, payment); err != nil {
				return fmt.Errorf("%w: WaiveFee - update payment: %v", ErrInternal, err)
			}
		}

		// 3. Обнуляем начисленный штраф
		if err := s.appointmentRepo.SetNoShowFee(ctx, tenantID, appointmentID, 0); err != nil {
			return fmt.Errorf("%w: WaiveFee - reset fee: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if r, ok := domain.ReasonOf(err); ok {
			s.logger.Warn("WaiveFee: tenant=%s appointment=%s rejected: %s", tenantID, appointmentID, r)
		} else {
			s.logger.Error("WaiveFee: tenant=%s appointment=%s failed: %v", tenantID, appointmentID, err)
		}
		return err
	}

	s.metrics.RecordFeeWaived()
	s.logger.Info("WaiveFee: tenant=%s appointment=%s fee waived: %s", tenantID, appointmentID, reason)
	return nil
}

func (s *Service) notify(ctx context.Context, tenant *domain.Tenant, owner *domain.Owner, appt *domain.Appointment, feeCents int64) bool {
	when := appt.ScheduledStart.In(tenant.Location()).Format("January 02 at 03:04 PM")
	body := fmt.Sprintf(smsTemplate, owner.FirstName, when, decimal.New(feeCents, -2).StringFixed(2))

	if err := s.sms.Send(ctx, *owner.Phone, body); err != nil {
		s.logger.Warn("MarkAsNoShow: failed to send SMS to owner=%s: %v", owner.ID, err)
		return false
	}
	return true
}
