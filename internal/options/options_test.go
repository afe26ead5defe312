package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLists(t *testing.T) {
	s := Default()

	goals, err := s.List(InvestmentGoals)
	require.NoError(t, err)
	assert.Equal(t, List{
		{Label: "Growth", Value: "Growth"},
		{Label: "Income", Value: "Income"},
		{Label: "Balanced", Value: "Balanced"},
		{Label: "Conservative", Value: "Conservative"},
	}, goals)

	risk, err := s.List(RiskTolerance)
	require.NoError(t, err)
	assert.Len(t, risk, 3)

	countries, err := s.List(Countries)
	require.NoError(t, err)
	assert.Greater(t, len(countries), 240)
	assert.True(t, countries.Contains("US"))
	assert.True(t, countries.Contains("NO"))
	assert.Equal(t, "Vietnam", countries.Label("VN"))
	assert.Empty(t, countries.Label("XX"))

	_, err = s.List("colours")
	assert.ErrorIs(t, err, ErrUnknownList)
}

func TestSearch(t *testing.T) {
	countries, err := Default().List(Countries)
	require.NoError(t, err)

	got := countries.Search("viet", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "VN", got[0].Value)

	byCode := countries.Search("de", 0)
	assert.Contains(t, byCode, Option{Label: "Germany", Value: "DE"})

	assert.Len(t, countries.Search("", 5), 5)
	assert.Empty(t, countries.Search("zzzz", 0))
}

func TestLoadOverridesList(t *testing.T) {
	p := filepath.Join(t.TempDir(), "options.yaml")
	content := `
risk_tolerance:
  - {label: "Cautious", value: "low"}
  - {value: "high"}
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))

	s, err := Load(p)
	require.NoError(t, err)

	risk, err := s.List(RiskTolerance)
	require.NoError(t, err)
	assert.Equal(t, List{{Label: "Cautious", Value: "low"}, {Label: "high", Value: "high"}}, risk)

	goals, err := s.List(InvestmentGoals)
	require.NoError(t, err)
	assert.Len(t, goals, 4)
}

func TestLoadRejectsEmptyValue(t *testing.T) {
	p := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(p, []byte("countries:\n  - {label: \"Nowhere\"}\n"), 0644))

	_, err := Load(p)
	assert.Error(t, err)
}
