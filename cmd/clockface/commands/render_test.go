package commands_test

import (
	"bytes"
	"context"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucax88x/clockface/cmd/clockface/commands"
	"github.com/lucax88x/clockface/cmd/clockface/console"
	"github.com/lucax88x/clockface/internal/config"
	"github.com/lucax88x/clockface/internal/settings"
	"github.com/lucax88x/clockface/internal/widget"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func execute(t *testing.T, stdout *bytes.Buffer, args ...string) error {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	config.SetDefaults(v)

	root := commands.NewRootCmd(
		context.Background(),
		slog.New(slog.DiscardHandler),
		v,
		&console.Console{Stdout: stdout, Stderr: &bytes.Buffer{}},
		new(slog.LevelVar),
	)
	root.SetArgs(args)

	return root.Execute()
}

func TestRender_WritesPngAndState(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "clock.png")
	state := filepath.Join(dir, "state.yaml")

	err := execute(t, &bytes.Buffer{},
		"render", "--width", "120", "--height", "80", "--at", "03:15", "--out", out, "--state-out", state)
	require.NoError(t, err)

	file, err := os.Open(out)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())

	saved, err := os.ReadFile(state)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "hourArrow")
	assert.Contains(t, string(saved), "#FFD3D3D3")
}

func TestRender_IntrinsicSizeToStdout(t *testing.T) {
	var stdout bytes.Buffer

	err := execute(t, &stdout, "render", "--density", "0.5", "--out", "-")
	require.NoError(t, err)

	img, err := png.Decode(&stdout)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestRender_DensityDefaultsToSettings(t *testing.T) {
	var stdout bytes.Buffer

	err := execute(t, &stdout, "render", "--out", "-")
	require.NoError(t, err)

	img, err := png.Decode(&stdout)
	require.NoError(t, err)

	want := widget.DefaultSize(settings.Clockface.Density)
	assert.Equal(t, want, img.Bounds().Dx())
	assert.Equal(t, want, img.Bounds().Dy())
}

func TestRender_RestoresState(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "in.yaml")
	roundTrip := filepath.Join(dir, "out.yaml")

	require.NoError(t, os.WriteFile(state, []byte("base: \"#FFFFFFFF\"\n"), 0o644))

	err := execute(t, &bytes.Buffer{},
		"render", "--width", "16", "--height", "16", "--out", filepath.Join(dir, "c.png"),
		"--state-in", state, "--state-out", roundTrip)
	require.NoError(t, err)

	saved, err := os.ReadFile(roundTrip)
	require.NoError(t, err)
	var bundle map[string]string
	require.NoError(t, yaml.Unmarshal(saved, &bundle))
	assert.Equal(t, "#FFFFFFFF", bundle["base"])
	assert.Equal(t, "#FF000000", bundle["frame"])
}

func TestRender_BadTime(t *testing.T) {
	err := execute(t, &bytes.Buffer{}, "render", "--at", "25:99", "--out", "-")

	assert.Error(t, err)
}
