package clock

import "time"

// Real провайдер текущего времени для production
type Real struct{}

// Now возвращает текущее время в UTC
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed провайдер с зафиксированным временем (для тестов)
type Fixed struct {
	T time.Time
}

// Now возвращает зафиксированное время
func (f Fixed) Now() time.Time {
	return f.T
}
