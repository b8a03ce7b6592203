//go:build integration
// +build integration

package spaces_test

import (
	"context"
	"os"

	"github.com/DMarby/picsum-optimizer/internal/storage"
	"github.com/DMarby/picsum-optimizer/internal/storage/spaces"

	"testing"
)

func TestSpaces(t *testing.T) {
	provider, err := spaces.New(
		os.Getenv("OPTIMIZER_SPACE"),
		os.Getenv("OPTIMIZER_SPACES_ENDPOINT"),
		os.Getenv("OPTIMIZER_SPACES_ACCESS_KEY"),
		os.Getenv("OPTIMIZER_SPACES_SECRET_KEY"),
		true,
	)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	t.Run("Put and get an image", func(t *testing.T) {
		if err := provider.Put(ctx, "test/1.jpg", []byte("image data")); err != nil {
			t.Fatal(err)
		}

		buf, err := provider.Get(ctx, "test/1.jpg")
		if err != nil {
			t.Fatal(err)
		}

		if string(buf) != "image data" {
			t.Error("image data doesn't match")
		}
	})

	t.Run("Returns error on a nonexistant image", func(t *testing.T) {
		_, err := provider.Get(ctx, "nonexistant.jpg")
		if err != storage.ErrNotFound {
			t.Fatalf("wrong error %v", err)
		}
	})
}
