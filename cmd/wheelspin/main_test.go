package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheelspin/internal/config"
	"wheelspin/internal/history"
	"wheelspin/internal/wheel"
)

// setupTestConfig writes a config file and returns a CLI pointing at it,
// with the history file in the same temporary directory.
func setupTestConfig(t *testing.T, name, content string) *CLI {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	return &CLI{
		Config:      configPath,
		HistoryFile: filepath.Join(dir, "history.yaml"),
	}
}

func runPick(t *testing.T, cli *CLI, cmd *PickCmd) (string, error) {
	t.Helper()
	if cmd.Count == 0 {
		cmd.Count = 1
	}
	var out bytes.Buffer
	err := cmd.run(cli, &out)
	return out.String(), err
}

const threeEntries = `version: "1"
wheel:
  spinTime: 0.5
  exactLanding: true
entries:
  - Alice
  - Bob
  - Carol
`

func TestPickCmd_PrintsWinner(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries+"sequence: [1]\n")

	out, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 42}})

	require.NoError(t, err)
	assert.Equal(t, "Bob\n", out)
}

func TestPickCmd_SequenceAcrossSpins(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries+"sequence: [2, 0, 1]\n")

	out, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 1}, Count: 3})

	require.NoError(t, err)
	assert.Equal(t, "Carol\nAlice\nBob\n", out)
}

func TestPickCmd_TargetFlag(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries)

	out, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Target: "car", Seed: 3}, Count: 2})

	require.NoError(t, err)
	assert.Equal(t, "Carol\nCarol\n", out, "an explicit target applies to every spin")
}

func TestPickCmd_TargetFromConfig(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries+"target: alice\n")

	out, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 3}})

	require.NoError(t, err)
	assert.Equal(t, "Alice\n", out)
}

func TestPickCmd_TargetNotFound(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries)

	_, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Target: "zzz"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `matches target "zzz"`)
}

func TestPickCmd_RandomWinnerIsAnEntry(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries)

	out, err := runPick(t, cli, &PickCmd{Count: 5})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		assert.Contains(t, []string{"Alice", "Bob", "Carol"}, l)
	}
}

func TestPickCmd_SeedIsReproducible(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries)

	first, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 99, NoHistory: true}, Count: 4})
	require.NoError(t, err)
	second, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 99, NoHistory: true}, Count: 4})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPickCmd_RecordsHistory(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries+"sequence: [0, 2]\n")

	_, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 5}, Count: 2})
	require.NoError(t, err)

	results, err := history.NewFileStore(cli.HistoryFile).Load()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Alice", results[0].Entry)
	assert.Equal(t, "Carol", results[1].Entry)
	assert.False(t, results[0].Time.IsZero())
}

func TestPickCmd_NoHistory(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries)

	_, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{NoHistory: true}})
	require.NoError(t, err)

	_, statErr := os.Stat(cli.HistoryFile)
	assert.True(t, os.IsNotExist(statErr), "history file should not be written")
}

func TestPickCmd_InvalidCount(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries)

	err := (&PickCmd{Count: -1}).run(cli, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count")
}

func TestPickCmd_NoEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty list",
			content: `version: "1"
entries: []
`,
		},
		{
			name: "all disabled",
			content: `version: "1"
entries:
  - text: Alice
    enabled: false
  - text: Bob
    enabled: "${ 1 > 2 }"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setupTestConfig(t, "wheel.yaml", tt.content)

			_, err := runPick(t, cli, &PickCmd{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "no entries to spin")
		})
	}
}

func TestPickCmd_ConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	cli := &CLI{Config: filepath.Join(dir, "does-not-exist.yaml")}

	_, err := runPick(t, cli, &PickCmd{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestPickCmd_InvalidConfig(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		errContain string
	}{
		{
			name: "invalid YAML syntax",
			content: `version: "1"
entries:
  - [invalid yaml
`,
			errContain: "load config",
		},
		{
			name: "missing version",
			content: `entries:
  - Alice
`,
			errContain: "load config",
		},
		{
			name: "negative weight",
			content: `version: "1"
entries:
  - text: Alice
    weight: -2
`,
			errContain: "build entries",
		},
		{
			name: "broken expression",
			content: `version: "1"
entries:
  - text: Alice
    enabled: "${ profile == }"
`,
			errContain: "build entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setupTestConfig(t, "wheel.yaml", tt.content)

			_, err := runPick(t, cli, &PickCmd{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestPickCmd_TOMLConfig(t *testing.T) {
	content := `version = "1"
sequence = [1]
entries = ["Alice", "Bob"]

[wheel]
spinTime = 0.5
exactLanding = true
`
	cli := setupTestConfig(t, "wheel.toml", content)

	out, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 8}})

	require.NoError(t, err)
	assert.Equal(t, "Bob\n", out)
}

const profileConfig = `version: "1"
profiles: [work, home]
wheel:
  spinTime: 0.5
  exactLanding: true
entries:
  - text: Standup
    when:
      profile: work
  - text: Dishes
    when:
      profile: home
  - text: Lunch
    enabled: "${ profile != 'home' }"
`

func TestPickCmd_ProfileFlag(t *testing.T) {
	tests := []struct {
		profile string
		want    []string
	}{
		{"work", []string{"Standup", "Lunch"}},
		{"home", []string{"Dishes"}},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			cli := setupTestConfig(t, "wheel.yaml", profileConfig)

			out, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Profile: tt.profile}, Count: 6})

			require.NoError(t, err)
			for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
				assert.Contains(t, tt.want, l)
			}
		})
	}
}

func TestPickCmd_ProfileRecordedInHistory(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", profileConfig)

	_, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Profile: "home"}})
	require.NoError(t, err)

	results, err := history.NewFileStore(cli.HistoryFile).Load()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, history.Result{Entry: "Dishes", Profile: "home", Time: results[0].Time}, results[0])
}

func TestPickCmd_ProfileFlag_Errors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		profile    string
		errContain string
	}{
		{"missing with profiles", profileConfig, "", "use --profile"},
		{"invalid profile", profileConfig, "gym", `invalid profile "gym"`},
		{"no profiles in config", threeEntries, "work", "no profiles defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setupTestConfig(t, "wheel.yaml", tt.content)

			_, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Profile: tt.profile}})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestHistoryCmd(t *testing.T) {
	cli := setupTestConfig(t, "wheel.yaml", threeEntries+"sequence: [0, 0, 1]\n")

	var out bytes.Buffer
	require.NoError(t, (&HistoryCmd{}).run(cli, &out))
	assert.Equal(t, "No results recorded yet\n", out.String())

	_, err := runPick(t, cli, &PickCmd{WheelFlags: WheelFlags{Seed: 2}, Count: 3})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&HistoryCmd{}).run(cli, &out))
	assert.Contains(t, out.String(), "Tally  ·  3 spins")
	assert.Less(t, strings.Index(out.String(), "Alice"), strings.Index(out.String(), "Bob"),
		"most wins first")

	out.Reset()
	require.NoError(t, (&HistoryCmd{Limit: 1}).run(cli, &out))
	assert.Contains(t, out.String(), "… 1 more")

	out.Reset()
	require.NoError(t, (&HistoryCmd{Clear: true}).run(cli, &out))
	assert.Contains(t, out.String(), "Cleared")

	results, err := history.NewFileStore(cli.HistoryFile).Load()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHistoryCmd_DefaultPath(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	store := historyStore(&CLI{})

	assert.Equal(t, filepath.Join(dataHome, "wheelspin", "history.yaml"), store.Path())
}

func TestSettingsFrom(t *testing.T) {
	got := settingsFrom(config.Wheel{SpinTime: 4, SlowSpin: true, DarkMode: true, ExactLanding: true, MaxSlices: 9})

	assert.Equal(t, wheel.Settings{SpinTime: 4, SlowSpin: true, DarkMode: true, ExactLanding: true}, got)
}

func TestNewRand(t *testing.T) {
	a, b := newRand(7), newRand(7)

	assert.Equal(t, a.Uint64(), b.Uint64(), "same seed, same sequence")
	assert.NotNil(t, newRand(0))
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name       string
		configured []string
		flag       string
		want       string
		wantErr    bool
	}{
		{"no profiles no flag", nil, "", "", false},
		{"no profiles with flag", nil, "work", "", true},
		{"profiles no flag", []string{"work"}, "", "", true},
		{"valid", []string{"work", "home"}, "home", "home", false},
		{"invalid", []string{"work"}, "gym", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateProfile(tt.configured, tt.flag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDebugLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	t.Setenv("WHEELSPIN_DEBUG", path)

	log, closeLog := debugLogger()
	log.Debug("hello", "k", "v")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello k=v")
}

func TestVersionCmd(t *testing.T) {
	originalVersion := Version
	t.Cleanup(func() { Version = originalVersion })

	Version = "test-version"
	cmd := &VersionCmd{}
	cli := &CLI{}

	err := cmd.Run(cli)

	require.NoError(t, err)
}
