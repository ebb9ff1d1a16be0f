package main

import (
	"testing"

	"github.com/1siamBot/neon-backdrop/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointer(t *testing.T) {
	p, err := parsePointer("")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = parsePointer("0.25, 0.75")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.75}, p)

	_, err = parsePointer("1")
	assert.Error(t, err)
	_, err = parsePointer("a,b")
	assert.Error(t, err)
	_, err = parsePointer("1.5,0")
	assert.Error(t, err)
}

func TestRenderFrame(t *testing.T) {
	cfg := config.Default()
	cfg.Particles = 400
	cfg.Seed = 11

	img, err := renderFrame(cfg, options{width: 160, height: 90, frames: 5, ssaa: 2, pointer: []float32{0.5, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())

	// some glow lands above the background
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > background.R+10 || img.Pix[i+1] > background.G+10 || img.Pix[i+2] > background.B+10 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
}

func TestRenderFrame_Deterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Particles = 200
	cfg.Seed = 3
	opts := options{width: 64, height: 64, frames: 3, ssaa: 1}

	a, err := renderFrame(cfg, opts)
	require.NoError(t, err)
	b, err := renderFrame(cfg, opts)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderFrame_BadSize(t *testing.T) {
	_, err := renderFrame(config.Default(), options{width: 0, height: 10})
	assert.Error(t, err)
}
