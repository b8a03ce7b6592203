package optimizer_test

import (
	"context"
	"testing"

	"github.com/DMarby/picsum-optimizer/internal/optimizer"
	"github.com/DMarby/picsum-optimizer/internal/optimizer/mock"
)

func TestRequest(t *testing.T) {
	tests := []struct {
		Name     string
		Request  *optimizer.Request
		Filter   string
		Expected bool
	}{
		{"present", optimizer.NewRequest("quality", "strip_icc"), "strip_icc", true},
		{"absent", optimizer.NewRequest("quality"), "strip_icc", false},
		{"no filters", optimizer.NewRequest(), "strip_icc", false},
		{"nil request", nil, "strip_icc", false},
	}

	for _, test := range tests {
		if result := test.Request.HasFilter(test.Filter); result != test.Expected {
			t.Errorf("%s: wrong result %t", test.Name, result)
		}
	}
}

func TestRun(t *testing.T) {
	o := &mock.Optimizer{Output: []byte("output buffer")}
	input := []byte("input buffer")

	t.Run("runs the optimizer for a matching extension", func(t *testing.T) {
		result := optimizer.Run(context.Background(), o, nil, ".jpg", input)
		if string(result) != "output buffer" {
			t.Errorf("wrong result %q", result)
		}
	})

	t.Run("returns the input for other extensions", func(t *testing.T) {
		result := optimizer.Run(context.Background(), o, nil, ".png", input)
		if &result[0] != &input[0] || len(result) != len(input) {
			t.Errorf("input buffer was not returned")
		}
	})
}
