package availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// WithinWorkingHours проверяет, что окно целиком попадает в рабочее время субъекта
//
// Если у сотрудника/ресурса задано недельное расписание, используется оно:
// отсутствующий день недели означает выходной, перерывы исключаются.
// Пустое расписание означает работу по общему графику тенанта
// (рабочие дни тенанта и окно business_start..business_end).
func WithinWorkingHours(schedule domain.WeeklySchedule, tenant *domain.Tenant, window domain.Interval) bool {
	loc := tenant.Location()

	if schedule.IsConfigured() {
		return schedule.Covers(window, loc)
	}

	day := window.Start.In(loc)
	if !tenant.IsBusinessDay(day) {
		return false
	}
	return tenant.BusinessWindow(day).Contains(window)
}

// CountOverlapping считает живые записи, пересекающиеся с окном
// Запись excludeID не учитывается (перенос самой себя)
func CountOverlapping(appointments []*domain.Appointment, window domain.Interval, excludeID *uuid.UUID) int {
	count := 0
	for _, a := range appointments {
		if !a.IsLive() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.Window().Overlaps(window) {
			count++
		}
	}
	return count
}
