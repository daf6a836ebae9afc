package clockface_test

import (
	"testing"

	"github.com/lucax88x/clockface/internal/clockface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in      string
		want    clockface.Color
		wantErr bool
	}{
		{in: "black", want: clockface.Black},
		{in: "Light_Gray", want: clockface.LightGray},
		{in: "#ff0000", want: 0xFFFF0000},
		{in: "#80112233", want: 0x80112233},
		{in: "  #00ff00 ", want: 0xFF00FF00},
		{in: "00ff00", want: 0xFF00FF00},
		{in: "#abc", wantErr: true},
		{in: "#zz112233", wantErr: true},
		{in: "chartreuse", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := clockface.ParseColor(tc.in)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestColor_Formats(t *testing.T) {
	c := clockface.ARGB(0x80, 0x11, 0x22, 0x33)

	assert.Equal(t, "#80112233", c.String())
	assert.Equal(t, "#112233", c.Hex())
	assert.Equal(t, c, clockface.FromColor(c.NRGBA()))
}

func TestParseStyle(t *testing.T) {
	style, err := clockface.ParseStyle(map[string]string{
		"hourarrow": "#ff0000",
		"base":      "white",
	})

	require.NoError(t, err)

	want := clockface.DefaultStyle()
	want.HourArrow = 0xFFFF0000
	want.Base = clockface.White
	assert.Equal(t, want, style)
}

func TestParseStyle_KeepsDefaultsOnError(t *testing.T) {
	style, err := clockface.ParseStyle(map[string]string{
		"frame":   "nope",
		"unknown": "#000000",
		"dots":    "#0000ff",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame")
	assert.Contains(t, err.Error(), "unknown")

	assert.Equal(t, clockface.DefaultStyle().Frame, style.Frame)
	assert.Equal(t, clockface.Color(0xFF0000FF), style.Dots)
}

func TestStyle_With(t *testing.T) {
	base := clockface.DefaultStyle()

	for _, key := range clockface.Keys {
		next, ok := base.With(key, clockface.White)
		require.True(t, ok, key)

		got, ok := next.Get(key)
		require.True(t, ok)
		assert.Equal(t, clockface.White, got, key)
		assert.NotEqual(t, base.Fingerprint(), next.Fingerprint(), key)
	}

	_, ok := base.With("hands", clockface.White)
	assert.False(t, ok)
}
