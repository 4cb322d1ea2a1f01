package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform(" Google ")
	require.NoError(t, err)
	assert.Equal(t, PlatformGoogle, p)

	p, err = ParsePlatform("META")
	require.NoError(t, err)
	assert.Equal(t, PlatformMeta, p)

	_, err = ParsePlatform("tiktok")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestPlatformCapabilities(t *testing.T) {
	metaID := "1234567890"
	googleID := "123-456-7890"
	client := &Client{
		ID:              "client-1",
		MetaAccountID:   &metaID,
		MetaAdsBudget:   3000,
		GoogleAccountID: &googleID,
		GoogleAdsBudget: 1500,
	}

	tests := []struct {
		platform        Platform
		expectedAccount string
		expectedBudget  float64
		validID         string
		invalidID       string
		normalizedInput string
		normalized      string
	}{
		{
			platform:        PlatformMeta,
			expectedAccount: metaID,
			expectedBudget:  3000,
			validID:         "act_1234567890",
			invalidID:       "act_12ab",
			normalizedInput: "act_987654321",
			normalized:      "987654321",
		},
		{
			platform:        PlatformGoogle,
			expectedAccount: googleID,
			expectedBudget:  1500,
			validID:         "123-456-7890",
			invalidID:       "123",
			normalizedInput: "987-654-3210",
			normalized:      "9876543210",
		},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			caps, err := CapabilitiesFor(tt.platform)
			require.NoError(t, err)

			assert.Equal(t, tt.platform, caps.Name())
			assert.Equal(t, tt.expectedAccount, caps.ResolveAccountID(client))
			assert.Equal(t, tt.expectedBudget, caps.StandingBudget(client))
			assert.Equal(t, tt.normalized, caps.NormalizeAccountID(tt.normalizedInput))
			assert.NoError(t, caps.ValidateAccountID(tt.validID))
			assert.ErrorIs(t, caps.ValidateAccountID(tt.invalidID), ErrInvalidAccountID)
			assert.ErrorIs(t, caps.ValidateAccountID(""), ErrInvalidAccountID)

			assert.Empty(t, caps.ResolveAccountID(&Client{}))
			assert.Zero(t, caps.StandingBudget(nil))
		})
	}

	_, err := CapabilitiesFor("tiktok")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestAdAccount_EffectiveStandingBudget(t *testing.T) {
	caps, err := CapabilitiesFor(PlatformMeta)
	require.NoError(t, err)

	client := &Client{MetaAdsBudget: 3000}
	own := 800.0

	primary := &AdAccount{IsPrimary: true, BudgetAmount: &own}
	secondary := &AdAccount{IsPrimary: false, BudgetAmount: &own}
	secondaryWithoutBudget := &AdAccount{IsPrimary: false}

	assert.Equal(t, 3000.0, primary.EffectiveStandingBudget(client, caps))
	assert.Equal(t, 800.0, secondary.EffectiveStandingBudget(client, caps))
	assert.Equal(t, 3000.0, secondaryWithoutBudget.EffectiveStandingBudget(client, caps))
}
