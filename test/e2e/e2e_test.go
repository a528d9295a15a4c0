// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"business-advisor/internal/common/camunda"
	"business-advisor/internal/common/config"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/validation"
	"business-advisor/internal/market"

	srd "business-advisor/internal/workers/diagnostic/score-readiness-diagnostic"
	cmi "business-advisor/internal/workers/market/compute-market-indicators"
	cbv "business-advisor/internal/workers/valuation/calculate-business-valuation"
)

// brokerEnv names the gateway to run against; the suite is skipped when it is unset.
const brokerEnv = "E2E_ZEEBE_ADDRESS"

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	address := os.Getenv(brokerEnv)
	if address == "" {
		fmt.Printf("%s not set, skipping e2e tests\n", brokerEnv)
		os.Exit(0)
	}

	var err error
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         address,
		UsePlaintextConnection: true,
	})
	if err != nil {
		fmt.Printf("failed to connect to Zeebe at %s: %v\n", address, err)
		os.Exit(1)
	}

	zapLog, _ = zap.NewDevelopment()

	code := m.Run()

	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log := logger.NewZapAdapter(zapLog)
	validator, err := validation.NewDefaultValidator()
	require.NoError(t, err)

	workers := startWorkers(t, validator, log)
	defer func() {
		for _, w := range workers {
			w.Stop()
		}
	}()

	deployProcess(t, ctx)

	series, err := market.SampleSeries("3m")
	require.NoError(t, err)

	answers := map[string]int{}
	for _, id := range []string{
		"marketPosition", "growthRate", "marketTrend",
		"profitability", "cashFlow", "financingNeeds",
		"systemsProcesses", "teamStructure", "customerDiversity",
	} {
		answers[id] = 4
	}

	cmd, err := zeebeClient.NewCreateInstanceCommand().
		BPMNProcessId("business-advisor").
		LatestVersion().
		VariablesFromObject(map[string]interface{}{
			"profile": map[string]interface{}{
				"industry":       "technology",
				"revenue":        1000000,
				"ebitda":         250000,
				"growthRate":     15,
				"employees":      10,
				"yearsOperation": 5,
			},
			"currentYear": 2025,
			"answers":     answers,
			"series":      series,
		})
	require.NoError(t, err)

	resp, err := cmd.WithResult().Send(ctx)
	require.NoError(t, err, "process instance did not complete")

	var result struct {
		Valuation  cbv.Valuation  `json:"valuation"`
		Scores     srd.Scores     `json:"scores"`
		ExitReady  bool           `json:"exitReady"`
		Indicators cmi.Indicators `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.GetVariables()), &result))

	assert.Equal(t, 3139500.0, result.Valuation.TotalValue)
	assert.Equal(t, 12.56, result.Valuation.EBITDAMultiple)
	assert.Equal(t, 313.9, result.Valuation.RevenuePercentage)
	assert.Len(t, result.Valuation.Projection, 6)

	assert.Equal(t, 80, result.Scores.Overall.Percentage)
	assert.True(t, result.ExitReady)

	assert.Equal(t, "up", result.Indicators.DealTrend)
	assert.InDelta(t, 18.42, result.Indicators.DealVolumeChangePct, 0.01)
}

func startWorkers(t *testing.T, validator *validation.Validator, log logger.Logger) []*camunda.Worker {
	t.Helper()
	wcfg := config.WorkerConfig{Enabled: true, MaxJobsActive: 5, Timeout: 10000}

	valuationHandler := cbv.NewHandler(cbv.LoadConfig(), validator, log)
	diagnosticHandler := srd.NewHandler(srd.LoadConfig(), validator, log)
	marketHandler := cmi.NewHandler(cmi.LoadConfig(), validator, log)

	return []*camunda.Worker{
		camunda.StartWorker(zeebeClient, cbv.TaskType, wcfg, valuationHandler.Handle, log),
		camunda.StartWorker(zeebeClient, srd.TaskType, wcfg, diagnosticHandler.Handle, log),
		camunda.StartWorker(zeebeClient, cmi.TaskType, wcfg, marketHandler.Handle, log),
	}
}

func deployProcess(t *testing.T, ctx context.Context) {
	t.Helper()

	var path string
	for _, dir := range []string{"bpmn", "../bpmn", "../../bpmn"} {
		candidate := filepath.Join(dir, "business-advisor.bpmn")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
	}
	require.NotEmpty(t, path, "business-advisor.bpmn not found")

	_, err := zeebeClient.NewDeployResourceCommand().AddResourceFile(path).Send(ctx)
	require.NoError(t, err, "failed to deploy %s", path)
	t.Logf("deployed %s", path)
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_CalculateBusinessValuation(b *testing.B) {
	handler := cbv.NewHandler(cbv.LoadConfig(), nil, logger.NewNoOpLogger())
	input := &cbv.Input{
		Profile: cbv.Profile{
			Industry: "technology", Revenue: 1000000, EBITDA: 250000,
			GrowthRate: 15, Employees: 10, YearsOperation: 5,
		},
		CurrentYear: 2025,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_ComputeMarketIndicators(b *testing.B) {
	handler := cmi.NewHandler(cmi.LoadConfig(), nil, logger.NewNoOpLogger())
	series, _ := market.SampleSeries("12m")
	input := &cmi.Input{Series: series}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}
