// internal/workers/valuation/calculate-business-valuation/handler_test.go
package calculatebusinessvaluation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "business-advisor/internal/common/errors"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/validation"
	"business-advisor/internal/valuation"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	cfg := LoadConfig()
	cfg.Now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return cfg
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	v, err := validation.NewDefaultValidator()
	require.NoError(t, err)
	return NewHandler(createTestConfig(), v, logger.NewTestLogger(t))
}

func createTestInput() *Input {
	return &Input{
		Profile: Profile{
			Industry:       "technology",
			Revenue:        1000000,
			EBITDA:         250000,
			GrowthRate:     15,
			Employees:      10,
			YearsOperation: 5,
		},
		CurrentYear: 2025,
	}
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	v := output.Valuation
	assert.Equal(t, "technology", v.Industry)
	assert.Equal(t, "Technology", v.IndustryLabel)
	assert.Equal(t, 3139500.0, v.TotalValue)
	assert.Equal(t, 12.56, v.EBITDAMultiple)
	assert.Equal(t, 313.9, v.RevenuePercentage)
	require.Len(t, v.Projection, valuation.ProjectionYears+1)
	assert.Equal(t, ProjectionYear{Year: 2025, Revenue: 1000000, EBITDA: 250000, Value: 3139500}, v.Projection[0])
	assert.Equal(t, 2030, v.Projection[5].Year)
}

func TestHandler_Execute_DefaultsCurrentYear(t *testing.T) {
	handler := createTestHandler(t)
	input := createTestInput()
	input.CurrentYear = 0

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2025, output.Valuation.Projection[0].Year)
}

func TestHandler_Execute_ConfiguredMultipliers(t *testing.T) {
	cfg := createTestConfig()
	table, err := valuation.DefaultMultipliers().WithOverrides(map[string]valuation.IndustryMultiplier{
		"technology": {Base: 10, GrowthFactor: 0},
	})
	require.NoError(t, err)
	cfg.Multipliers = table
	handler := NewHandler(cfg, nil, logger.NewNoOpLogger())

	input := createTestInput()
	input.Profile.YearsOperation = 0
	input.Profile.Employees = 0

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	// 250000 * 10 with every multiplier at 1
	assert.Equal(t, 2500000.0, output.Valuation.TotalValue)
	assert.Equal(t, 10.0, output.Valuation.EBITDAMultiple)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *Input)
		code   apperrors.ErrorCode
	}{
		{"unknown industry", func(in *Input) { in.Profile.Industry = "mining" }, apperrors.ErrCodeUnknownIndustry},
		{"empty industry", func(in *Input) { in.Profile.Industry = "" }, apperrors.ErrCodeUnknownIndustry},
		{"zero ebitda", func(in *Input) { in.Profile.EBITDA = 0 }, apperrors.ErrCodeDivisionByZero},
		{"zero revenue", func(in *Input) { in.Profile.Revenue = 0 }, apperrors.ErrCodeDivisionByZero},
	}

	handler := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createTestInput()
			tt.mutate(input)

			output, err := handler.Execute(context.Background(), input)
			require.Error(t, err)
			assert.Nil(t, output)
			assert.Equal(t, tt.code, apperrors.FromDomain(err).Code)
		})
	}
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	handler := createTestHandler(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := handler.Execute(ctx, createTestInput())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTimeout, apperrors.FromDomain(err).Code)
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := createTestHandler(t)

	input, err := handler.parseInput(`{"profile":{"industry":"retail","revenue":500000,"ebitda":80000,"growthRate":4,"employees":6,"yearsOperation":12},"currentYear":2026}`)
	require.NoError(t, err)
	assert.Equal(t, "retail", input.Profile.Industry)
	assert.Equal(t, 12, input.Profile.YearsOperation)
	assert.Equal(t, 2026, input.CurrentYear)

	tests := map[string]string{
		"missing profile":  `{"currentYear":2026}`,
		"numeric industry": `{"profile":{"industry":7,"revenue":1,"ebitda":1,"growthRate":1,"employees":1,"yearsOperation":1}}`,
		"malformed json":   `{"profile":`,
	}
	for name, variables := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := handler.parseInput(variables)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.FromDomain(err).Code)
		})
	}
}

func TestHandler_UnknownIndustryPassesSchema(t *testing.T) {
	handler := createTestHandler(t)

	input, err := handler.parseInput(`{"profile":{"industry":"mining","revenue":1000000,"ebitda":250000,"growthRate":15,"employees":10,"yearsOperation":5}}`)
	require.NoError(t, err, "industries are checked by the engine, not the schema")

	_, err = handler.Execute(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnknownIndustry, apperrors.FromDomain(err).Code)
	assert.False(t, apperrors.FromDomain(err).Retryable)
}

func TestHandler_ParseInput_WithoutValidator(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewNoOpLogger())

	input, err := handler.parseInput(`{"profile":{"industry":"mining"}}`)
	require.NoError(t, err, "decoding alone does not check industries")
	assert.Equal(t, "mining", input.Profile.Industry)

	_, err = handler.parseInput(`[]`)
	assert.Error(t, err)
}

func BenchmarkHandler_Execute(b *testing.B) {
	handler := NewHandler(createTestConfig(), nil, logger.NewNoOpLogger())
	input := createTestInput()
	for i := 0; i < b.N; i++ {
		_, _ = handler.Execute(context.Background(), input)
	}
}
