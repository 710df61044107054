package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMoonCommand(t *testing.T) {
	out, err := runCLI(t, "moon", "--date", "2000-01-06T12:24:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "(new_moon)")
	assert.Contains(t, out, "illumination 0%")

	out, err = runCLI(t, "--json", "moon", "--date", "2000-01-06T12:24:00Z")
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "new_moon", res["phase"])

	_, err = runCLI(t, "moon", "--date", "soon")
	assert.Error(t, err)
}

func TestSignCommand(t *testing.T) {
	out, err := runCLI(t, "sign", "10", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Škorpija (scorpio)")
	assert.Contains(t, out, "Pluton, Mars")

	_, err = runCLI(t, "sign", "2", "30")
	assert.EqualError(t, err, "no sign for 02-30")

	_, err = runCLI(t, "sign", "feb", "1")
	assert.Error(t, err)
}

func TestCompatCommand(t *testing.T) {
	out, err := runCLI(t, "compat", "aries", "Lav")
	require.NoError(t, err)
	assert.Contains(t, out, "score 80 (chemistry 88, communication 83, stability 78)")

	_, err = runCLI(t, "compat", "aries", "ophiuchus")
	assert.ErrorContains(t, err, "unknown zodiac sign")
}

func TestAffirmCommand(t *testing.T) {
	out, err := runCLI(t, "affirm", "leo", "--phase", "new_moon")
	require.NoError(t, err)
	assert.Contains(t, out, "Lav")

	_, err = runCLI(t, "affirm", "leo", "--phase", "blue_moon")
	assert.Error(t, err)
}

func TestAspectCommand(t *testing.T) {
	out, err := runCLI(t, "aspect", "121")
	require.NoError(t, err)
	assert.Equal(t, "Trigon (trine) orb 1.00°, major\n", out)

	out, err = runCLI(t, "aspect", "100")
	require.NoError(t, err)
	assert.Equal(t, "no aspect at 100°\n", out)
}

func TestHoroscopeValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horoscopes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
horoscopes:
  - id: aries
    daily: {text: Dan., lastUpdated: 2020-01-01T00:00:00Z}
    weekly: {text: Nedelja., lastUpdated: 2020-01-01T00:00:00Z}
    monthly: {text: Mesec., lastUpdated: 2020-01-01T00:00:00Z}
`), 0o644))

	out, err := runCLI(t, "horoscope", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 signs")
	assert.Contains(t, out, "aries")
	assert.Contains(t, out, "monthly=stale")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`horoscopes: [{id: ophiuchus}]`), 0o644))
	_, err = runCLI(t, "horoscope", "validate", bad)
	assert.ErrorContains(t, err, "unknown zodiac sign")
}

func TestHoroscopePublishRequiresBucket(t *testing.T) {
	t.Setenv("HOROSCOPE_S3_BUCKET", "")
	_, err := runCLI(t, "horoscope", "publish", "horoscopes.yaml")
	assert.ErrorContains(t, err, "--bucket is required")
}
