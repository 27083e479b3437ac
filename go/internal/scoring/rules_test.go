package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesOverridesDefaults(t *testing.T) {
	yaml := `
passing:
  yards_per_point: 20
  td_points: 6
receiving:
  reception_points: 1
`
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, rules.Passing.YardsPerPoint)
	assert.Equal(t, 6.0, rules.Passing.TDPoints)
	assert.Equal(t, 1.0, rules.Receiving.ReceptionPoints)
	// untouched sections keep defaults
	assert.Equal(t, 10.0, rules.Rushing.YardsPerPoint)
	assert.Equal(t, 3.0, rules.Kicker.FieldGoalPoints)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
