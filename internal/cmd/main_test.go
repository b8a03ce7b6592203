package cmd_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/DMarby/picsum-optimizer/internal/cmd"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		Value    string
		Expected []string
	}{
		{"", nil},
		{"strip_icc", []string{"strip_icc"}},
		{"strip_icc, quality ,", []string{"strip_icc", "quality"}},
		{" , ", nil},
	}

	for _, test := range tests {
		if result := cmd.SplitList(test.Value); !reflect.DeepEqual(result, test.Expected) {
			t.Errorf("%q: wrong result %#v", test.Value, result)
		}
	}
}

func TestWaitForInterruptCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cmd.WaitForInterrupt(ctx); err == nil || err.Error() != "canceled" {
		t.Errorf("wrong error %v", err)
	}
}
