package jpegtran_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os/exec"
	"testing"

	"github.com/DMarby/picsum-optimizer/internal/command"
	"github.com/DMarby/picsum-optimizer/internal/logger"
	"github.com/DMarby/picsum-optimizer/internal/optimizer"
	"github.com/DMarby/picsum-optimizer/internal/optimizer/jpegtran"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fixtureJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), 128, 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func TestJpegtranBinary(t *testing.T) {
	path, err := exec.LookPath("jpegtran")
	if err != nil {
		t.Skip("jpegtran not available")
	}

	core, logs := observer.New(zap.DebugLevel)
	o := jpegtran.New(jpegtran.Config{Path: path, Progressive: true}, command.Exec{}, logger.FromCore(core))

	t.Run("optimizes a jpeg", func(t *testing.T) {
		input := fixtureJPEG(t)
		result := o.RunOptimizer(context.Background(), optimizer.NewRequest("strip_icc"), ".jpg", input)

		if bytes.Equal(result, input) {
			t.Fatal("image was not optimized")
		}

		if _, err := jpeg.Decode(bytes.NewReader(result)); err != nil {
			t.Errorf("optimized image doesn't decode: %s", err)
		}
	})

	t.Run("returns the original buffer for an invalid image", func(t *testing.T) {
		before := logs.Len()
		input := []byte("garbage")

		result := o.RunOptimizer(context.Background(), optimizer.NewRequest(), ".jpg", input)
		if !bytes.Equal(result, input) {
			t.Errorf("wrong result %q", result)
		}

		if logs.Len() != before+1 {
			t.Errorf("wrong number of log entries %d", logs.Len()-before)
		}
	})
}
