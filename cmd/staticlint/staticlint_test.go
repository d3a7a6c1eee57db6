package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"
	"golang.org/x/tools/go/analysis/passes/copylock"
)

func TestOsExitCheckAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), OsExitCheckAnalyzer, "osexit")
}

func TestWallClockAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), WallClockAnalyzer, "storage", "handlers")
}

func TestCopylock(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), copylock.Analyzer, "copied")
}

func TestParseChecks(t *testing.T) {
	checks, err := parseChecks([]byte(`{"Staticcheck":["ST1005","S1008"]}`))
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"ST1005": true, "S1008": true}, checks)

	_, err = parseChecks([]byte(`{`))
	require.Error(t, err)
}

func TestCollectChecks(t *testing.T) {
	appendPassesChecks()
	appendStaticcheckIoChecks(defaultChecks())
	appendOtherPublicChecks()
	appendCustomChecks()

	names := make(map[string]bool, len(enabled))
	for _, a := range enabled {
		names[a.Name] = true
	}
	for _, want := range []string{"copylocks", "SA4006", "ST1005", "S1008", "bodyclose", "errcheck", "gocritic", "osexitcheck", "wallclock"} {
		require.True(t, names[want], want)
	}
	require.False(t, names["ST1003"])
}
