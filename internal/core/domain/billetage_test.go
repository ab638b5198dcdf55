package domain_test

import (
	"testing"

	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBilletage_Total(t *testing.T) {
	b := domain.Billetage{
		20000: 2,
		1000:  3,
		100:   5,
	}
	assert.True(t, decimal.NewFromInt(43500).Equal(b.Total()), "got %s", b.Total())

	assert.True(t, domain.Billetage{}.Total().IsZero())
}

func TestBilletage_Validate(t *testing.T) {
	tests := []struct {
		name     string
		count    domain.Billetage
		declared int64
		wantErr  bool
	}{
		{
			name:     "matching total accepted",
			count:    domain.Billetage{20000: 2, 2000: 2},
			declared: 44000,
			wantErr:  false,
		},
		{
			name:     "mismatched total rejected",
			count:    domain.Billetage{20000: 2, 2000: 2},
			declared: 45000,
			wantErr:  true,
		},
		{
			name:     "unknown denomination rejected",
			count:    domain.Billetage{25: 4},
			declared: 100,
			wantErr:  true,
		},
		{
			name:     "negative count rejected",
			count:    domain.Billetage{500: -1},
			declared: -500,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.count.Validate(decimal.NewFromInt(tt.declared))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_HasCapability(t *testing.T) {
	econome := domain.User{Role: domain.RoleEconome}
	director := domain.User{Role: domain.RoleDirector}
	admin := domain.User{Role: domain.RoleAdmin}

	assert.True(t, econome.HasCapability(domain.CanRequest))
	assert.True(t, econome.HasCapability(domain.CanExecute))
	assert.False(t, econome.HasCapability(domain.CanAuthorize))

	assert.True(t, director.HasCapability(domain.CanAuthorize))
	assert.False(t, director.HasCapability(domain.CanRequest))
	assert.False(t, director.HasCapability(domain.CanExecute))

	assert.True(t, admin.HasCapability(domain.CanRequest))
	assert.True(t, admin.HasCapability(domain.CanAuthorize))
	assert.True(t, admin.HasCapability(domain.CanExecute))
}
