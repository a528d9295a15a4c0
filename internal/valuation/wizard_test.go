package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_RequiresIndustryToAdvance(t *testing.T) {
	w := NewWizard(DefaultMultipliers(), 2025)
	assert.Equal(t, StepDetails, w.Step())
	assert.False(t, w.CanAdvance())

	assert.ErrorIs(t, w.Next(), ErrIndustryRequired)
	assert.Equal(t, StepDetails, w.Step())

	assert.ErrorIs(t, w.SetIndustry("mining"), ErrUnknownIndustry)
	require.NoError(t, w.SetIndustry(IndustryTechnology))
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, StepFinancials, w.Step())
}

func TestWizard_FullFlow(t *testing.T) {
	w := NewWizard(DefaultMultipliers(), 2025)
	require.NoError(t, w.SetIndustry(IndustryTechnology))
	require.NoError(t, w.Next())

	_, err := w.Result()
	assert.ErrorIs(t, err, ErrResultsNotReady)

	require.NoError(t, w.Next())
	assert.Equal(t, StepResults, w.Step())
	assert.False(t, w.CanAdvance())

	result, err := w.Result()
	require.NoError(t, err)
	assert.Equal(t, 3139500.0, result.TotalValue)

	// Next on the last step is a no-op.
	require.NoError(t, w.Next())
	assert.Equal(t, StepResults, w.Step())
}

func TestWizard_BackStopsAtFirstStep(t *testing.T) {
	w := NewWizard(DefaultMultipliers(), 2025)
	require.NoError(t, w.SetIndustry(IndustryRetail))
	require.NoError(t, w.Next())

	w.Back()
	assert.Equal(t, StepDetails, w.Step())
	w.Back()
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, IndustryRetail, w.Profile().Industry)
}

func TestWizard_SetProfileKeepsIndustry(t *testing.T) {
	w := NewWizard(DefaultMultipliers(), 2025)
	require.NoError(t, w.SetIndustry(IndustryHealthcare))

	w.SetProfile(BusinessProfile{Industry: IndustryRetail, Revenue: 10, EBITDA: 5})
	assert.Equal(t, IndustryHealthcare, w.Profile().Industry)
	assert.Equal(t, 10.0, w.Profile().Revenue)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "Business Details", StepDetails.String())
	assert.Equal(t, "Financial Information", StepFinancials.String())
	assert.Equal(t, "Valuation Results", StepResults.String())
	assert.Equal(t, "unknown", Step(9).String())
}
