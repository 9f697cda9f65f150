package custom_test

import (
	"testing"
	"time"

	"github.com/XJIeI5/calcengine/internal/calcerr"
	"github.com/XJIeI5/calcengine/internal/custom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCase struct {
	inputs []string
	want   string
	err    error
}

func runCases(t *testing.T, o custom.Operation, cases []execCase) {
	t.Helper()
	for _, c := range cases {
		got, err := o.Execute(c.inputs)
		if c.err != nil {
			assert.ErrorIs(t, err, c.err, "inputs %v", c.inputs)
			continue
		}
		require.NoError(t, err, "inputs %v", c.inputs)
		assert.Equal(t, c.want, got, "inputs %v", c.inputs)
	}
}

func TestFactorial(t *testing.T) {
	runCases(t, custom.NewFactorial(), []execCase{
		{inputs: []string{"5"}, want: "120"},
		{inputs: []string{"0"}, want: "1"},
		{inputs: []string{"1"}, want: "1"},
		{inputs: []string{"10"}, want: "3628800"},
		{inputs: []string{"-3"}, err: calcerr.ErrInvalidInput},
		{inputs: []string{"2.5"}, err: calcerr.ErrInvalidInput},
		{inputs: []string{"1", "2"}, err: calcerr.ErrInvalidInput},
		{inputs: []string{}, err: calcerr.ErrInvalidInput},
	})
}

func TestFactorialLargeInputsReturnQuickly(t *testing.T) {
	f := custom.NewFactorial()
	for _, n := range []string{"66", "1000000000", "9223372036854775807"} {
		done := make(chan string, 1)
		go func() {
			got, err := f.Execute([]string{n})
			assert.NoError(t, err)
			done <- got
		}()
		select {
		case got := <-done:
			assert.Equal(t, "0", got, "F %s", n)
		case <-time.After(time.Second):
			t.Fatalf("F %s did not return", n)
		}
	}

	got, err := f.Execute([]string{"65"})
	require.NoError(t, err)
	assert.Equal(t, "-9223372036854775808", got)
}

func TestMetricConverter(t *testing.T) {
	runCases(t, custom.NewMetricConverter(), []execCase{
		{inputs: []string{"5.25"}, want: "13.335"},
		{inputs: []string{"4"}, want: "10.16"},
		{inputs: []string{"0"}, want: "0"},
		{inputs: []string{"-1"}, err: calcerr.ErrInvalidInput},
		{inputs: []string{"1", "1"}, err: calcerr.ErrInvalidInput},
	})
}

func TestPythagoreanSolve(t *testing.T) {
	runCases(t, custom.NewPythagoreanSolve(), []execCase{
		{inputs: []string{"5", "0", "13"}, want: "12"},
		{inputs: []string{"6", "8", "0"}, want: "10"},
		{inputs: []string{"0", "15", "17"}, want: "8"},
		{inputs: []string{"6", "0", "4"}, err: calcerr.ErrInvalidTriangle},
		{inputs: []string{"0", "20", "4"}, err: calcerr.ErrInvalidTriangle},
		{inputs: []string{"4", "6", "7"}, err: calcerr.ErrInvalidInput},
		{inputs: []string{"0", "0", "7"}, err: calcerr.ErrInvalidInput},
		{inputs: []string{"-3", "0", "7"}, err: calcerr.ErrInvalidInput},
		{inputs: []string{"3", "4"}, err: calcerr.ErrInvalidInput},
	})
}

func TestClearIgnoresInputs(t *testing.T) {
	runCases(t, custom.NewClear(), []execCase{
		{inputs: nil, want: "0"},
		{inputs: []string{"12"}, want: "0"},
	})
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := custom.DefaultRegistry()
	assert.Equal(t, []string{"C", "F", "M", "P"}, r.Codes())

	o, ok := r.Lookup("f")
	require.True(t, ok)
	assert.Equal(t, "Factorial", o.Name())
	assert.Equal(t, []string{"n"}, o.ArgumentLabels())
	assert.False(t, o.AllowsDecimal())

	_, ok = r.Lookup("x")
	assert.False(t, ok)
}
