package scalar_test

import (
	"testing"

	"github.com/0xalexb/yamljson/scalar"
	"github.com/0xalexb/yamljson/value"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func number(t *testing.T, s string) value.Value {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return value.Number(d)
}

func TestInfer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected value.Value
	}{
		{name: "empty is null", input: "", expected: value.Null()},
		{name: "true lowercase", input: "true", expected: value.Bool(true)},
		{name: "true uppercase", input: "TRUE", expected: value.Bool(true)},
		{name: "true titlecase", input: "True", expected: value.Bool(true)},
		{name: "false", input: "false", expected: value.Bool(false)},
		{name: "false mixed case", input: "fAlSe", expected: value.Bool(false)},
		{name: "null lowercase", input: "null", expected: value.Null()},
		{name: "null titlecase", input: "Null", expected: value.Null()},
		{name: "integer", input: "42", expected: number(t, "42")},
		{name: "decimal", input: "3.14", expected: number(t, "3.14")},
		{name: "negative zero is zero", input: "-0", expected: number(t, "0")},
		{name: "plain word", input: "hello", expected: value.String("hello")},
		{name: "partial number is string", input: "42abc", expected: value.String("42abc")},
		{name: "exponent", input: "1e3", expected: number(t, "1000")},
		{name: "signed exponent", input: "2.5E-2", expected: number(t, "0.025")},
		{name: "leading plus", input: "+7", expected: number(t, "7")},
		{name: "leading dot", input: ".5", expected: number(t, "0.5")},
		{name: "negative leading dot", input: "-.5", expected: number(t, "-0.5")},
		{name: "trailing dot", input: "1.", expected: number(t, "1")},
		{name: "trailing dot with exponent", input: "1.e2", expected: number(t, "100")},
		{name: "leading zeros", input: "007", expected: number(t, "7")},
		{name: "leading space is string", input: " 42", expected: value.String(" 42")},
		{name: "trailing space is string", input: "42 ", expected: value.String("42 ")},
		{name: "hex is string", input: "0x1F", expected: value.String("0x1F")},
		{name: "yaml infinity is string", input: ".inf", expected: value.String(".inf")},
		{name: "infinity word is string", input: "Infinity", expected: value.String("Infinity")},
		{name: "nan is string", input: "NaN", expected: value.String("NaN")},
		{name: "tilde is string", input: "~", expected: value.String("~")},
		{name: "yes is true", input: "yes", expected: value.Bool(true)},
		{name: "YES is true", input: "YES", expected: value.Bool(true)},
		{name: "on is string", input: "On", expected: value.String("On")},
		{name: "country code NO is string", input: "NO", expected: value.String("NO")},
		{name: "no is string", input: "no", expected: value.String("no")},
		{name: "off is string", input: "OFF", expected: value.String("OFF")},
		{name: "single letter y is string", input: "y", expected: value.String("y")},
		{name: "yesterday is string", input: "yesterday", expected: value.String("yesterday")},
		{name: "dangling exponent is string", input: "1e", expected: value.String("1e")},
		{name: "sign only is string", input: "-", expected: value.String("-")},
		{name: "dot only is string", input: ".", expected: value.String(".")},
		{name: "unicode fold is not false", input: "falſe", expected: value.String("falſe")},
		{name: "merge key text is string", input: "<<", expected: value.String("<<")},
		{name: "exponent overflow falls back to string", input: "1e99999999999", expected: value.String("1e99999999999")},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := scalar.Infer(testCase.input)

			assert.Equal(t, testCase.expected.Kind(), got.Kind())
			assert.True(t, testCase.expected.Equal(got), "expected %s, got %s", testCase.expected, got)
		})
	}
}

func TestInfer_PreservesLargeIntegers(t *testing.T) {
	t.Parallel()

	text := "123456789012345678901234567890"

	got := scalar.Infer(text)

	assert.Equal(t, text, got.String())
}

func TestInfer_StringIsVerbatim(t *testing.T) {
	t.Parallel()

	text := "  padded \"quoted\"\t"

	got, ok := scalar.Infer(text).AsString()
	require.True(t, ok)
	assert.Equal(t, text, got)
}

func TestIsNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, scalar.IsNumeric("-12.5e+3"))
	assert.False(t, scalar.IsNumeric(""))
	assert.False(t, scalar.IsNumeric("1_000"))
	assert.False(t, scalar.IsNumeric("1.2.3"))
}
