package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

func TestService_TotalDuration(t *testing.T) {
	s := &Service{DurationMinutes: 60, SetupBufferMinutes: 10, CleanupBufferMinutes: 10}
	assert.Equal(t, 80, s.TotalDurationMinutes())
}

func TestService_RequiresResource(t *testing.T) {
	assert.False(t, (&Service{}).RequiresResource())
	assert.True(t, (&Service{RequiresVan: true}).RequiresResource())
}

func TestService_DepositCents(t *testing.T) {
	tests := []struct {
		name    string
		service Service
		want    int64
	}{
		{name: "no deposit", service: Service{PriceCents: 10000}, want: 0},
		{name: "flat", service: Service{DepositRequired: true, PriceCents: 10000, DepositAmountCents: ptr.Ptr(int64(2000))}, want: 2000},
		{name: "percentage", service: Service{DepositRequired: true, PriceCents: 8500, DepositPercentage: ptr.Ptr(20)}, want: 1700},
		{name: "percentage rounds half up", service: Service{DepositRequired: true, PriceCents: 1005, DepositPercentage: ptr.Ptr(10)}, want: 101},
		{name: "flat wins", service: Service{DepositRequired: true, PriceCents: 10000, DepositAmountCents: ptr.Ptr(int64(500)), DepositPercentage: ptr.Ptr(50)}, want: 500},
		{name: "required without rule", service: Service{DepositRequired: true, PriceCents: 10000}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.service.DepositCents())
		})
	}
}
