package substitute_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Uniswap/lp-action-contracts/substitute"
	"github.com/Uniswap/lp-action-contracts/types"
)

const constantsSol = `// SPDX-License-Identifier: GPL-2.0-or-later
pragma solidity ^0.8.0;

library Constants {
    bytes constant UniswapV3Factory = hex'0000';
    bytes constant NonfungiblePositionManager = hex'1111';
    bytes constant SwapRouter02 = hex'';
}
`

func TestApply(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"UniswapV3Factory":           "abcd",
		"NonfungiblePositionManager": "DEADbeef",
		"SwapRouter02":               "6080604052",
	}

	out, report, err := substitute.Apply(constantsSol, values, substitute.Options{})
	require.NoError(t, err)

	expected := strings.NewReplacer(
		"UniswapV3Factory = hex'0000'", "UniswapV3Factory = hex'abcd'",
		"NonfungiblePositionManager = hex'1111'", "NonfungiblePositionManager = hex'DEADbeef'",
		"SwapRouter02 = hex''", "SwapRouter02 = hex'6080604052'",
	).Replace(constantsSol)
	require.Equal(t, expected, out)

	require.Equal(t, []substitute.Entry{
		{Name: "NonfungiblePositionManager", Matches: 1, Changed: true},
		{Name: "SwapRouter02", Matches: 1, Changed: true},
		{Name: "UniswapV3Factory", Matches: 1, Changed: true},
	}, report.Entries)
	require.Equal(t, []string{"NonfungiblePositionManager", "SwapRouter02", "UniswapV3Factory"}, report.Changed())
	require.Empty(t, report.Missing())
}

func TestApplyRoundTrip(t *testing.T) {
	t.Parallel()

	in := "    bytes constant Foo = hex'0000'; // keep me\n"
	out, _, err := substitute.Apply(in, map[string]string{"Foo": "abcd"}, substitute.Options{})
	require.NoError(t, err)
	require.Equal(t, "    bytes constant Foo = hex'abcd'; // keep me\n", out)
}

func TestApplyIdempotent(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"UniswapV3Factory":           "aa",
		"NonfungiblePositionManager": "bb",
		"SwapRouter02":               "cc",
	}

	first, _, err := substitute.Apply(constantsSol, values, substitute.Options{})
	require.NoError(t, err)

	second, report, err := substitute.Apply(first, values, substitute.Options{})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Empty(t, report.Changed())
}

func TestApplyIsolation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		in       string
		values   map[string]string
		expected string
	}{
		{
			name:     "same line entries do not bleed",
			in:       "A = hex'00'; B = hex'11';",
			values:   map[string]string{"A": "aaaa"},
			expected: "A = hex'aaaa'; B = hex'11';",
		},
		{
			name:     "suffix name does not match longer identifier",
			in:       "UniswapV3Factory = hex'00';\nFactory = hex'11';",
			values:   map[string]string{"Factory": "ff"},
			expected: "UniswapV3Factory = hex'00';\nFactory = hex'ff';",
		},
		{
			name:     "both names with shared suffix",
			in:       "UniswapV3Factory = hex'00';\nFactory = hex'11';",
			values:   map[string]string{"Factory": "ff", "UniswapV3Factory": "ee"},
			expected: "UniswapV3Factory = hex'ee';\nFactory = hex'ff';",
		},
		{
			name:     "dollar prefixed identifier ignored",
			in:       "$Foo = hex'00'; Foo = hex'11';",
			values:   map[string]string{"Foo": "22"},
			expected: "$Foo = hex'00'; Foo = hex'22';",
		},
		{
			name:     "unterminated literal does not swallow later lines",
			in:       "Foo = hex'00;\nuint x = 1;\nBar = hex'11';\n",
			values:   map[string]string{"Bar": "ab"},
			expected: "Foo = hex'00;\nuint x = 1;\nBar = hex'ab';\n",
		},
		{
			name:     "name at start of text",
			in:       "Foo = hex'00'",
			values:   map[string]string{"Foo": "12"},
			expected: "Foo = hex'12'",
		},
		{
			name:     "name containing regexp metacharacters is literal",
			in:       "F.o = hex'00'; Fxo = hex'11';",
			values:   map[string]string{"F.o": "22"},
			expected: "F.o = hex'22'; Fxo = hex'11';",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := substitute.Apply(tc.in, tc.values, substitute.Options{})
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}

func TestApplyPreservesSurroundingBytes(t *testing.T) {
	t.Parallel()

	in := "\r\n\tFoo = hex'00'\t \r\n  Bar = hex'01'  \n\n"
	out, _, err := substitute.Apply(in, map[string]string{"Foo": "ab", "Bar": "cd"}, substitute.Options{})
	require.NoError(t, err)
	require.Equal(t, "\r\n\tFoo = hex'ab'\t \r\n  Bar = hex'cd'  \n\n", out)
}

func TestApplyErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		in     string
		values map[string]string
		expErr error
	}{
		{
			name:   "missing placeholder",
			in:     constantsSol,
			values: map[string]string{"Quoter": "00"},
			expErr: types.ErrPatternMiss,
		},
		{
			name:   "wrong spacing is a miss",
			in:     "Foo=hex'00'",
			values: map[string]string{"Foo": "00"},
			expErr: types.ErrPatternMiss,
		},
		{
			name:   "unterminated literal is a miss",
			in:     "Foo = hex'00;\nuint x = 1;\nBar = hex'11';\n",
			values: map[string]string{"Foo": "ab"},
			expErr: types.ErrPatternMiss,
		},
		{
			name:   "duplicate placeholder",
			in:     "Foo = hex'00';\nFoo = hex'11';",
			values: map[string]string{"Foo": "22"},
			expErr: types.ErrAmbiguousPattern,
		},
		{
			name:   "non hex replacement",
			in:     "Foo = hex'00';",
			values: map[string]string{"Foo": "zz'"},
			expErr: types.ErrMalformedArtifact,
		},
		{
			name:   "odd length replacement",
			in:     "Foo = hex'00';",
			values: map[string]string{"Foo": "abc"},
			expErr: types.ErrMalformedArtifact,
		},
		{
			name:   "empty replacement",
			in:     "Foo = hex'00';",
			values: map[string]string{"Foo": ""},
			expErr: types.ErrMalformedArtifact,
		},
		{
			name:   "prefixed replacement",
			in:     "Foo = hex'00';",
			values: map[string]string{"Foo": "0xab"},
			expErr: types.ErrMalformedArtifact,
		},
		{
			name:   "empty name",
			in:     "Foo = hex'00';",
			values: map[string]string{"": "00"},
			expErr: types.ErrInvalidConfig,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := substitute.Apply(tc.in, tc.values, substitute.Options{})
			require.ErrorIs(t, err, tc.expErr)
			require.Empty(t, out)
		})
	}
}

func TestApplyAllowMissing(t *testing.T) {
	t.Parallel()

	values := map[string]string{"UniswapV3Factory": "abcd", "Quoter": "00"}
	out, report, err := substitute.Apply(constantsSol, values, substitute.Options{AllowMissing: true})
	require.NoError(t, err)
	require.Contains(t, out, "UniswapV3Factory = hex'abcd'")
	require.Equal(t, []string{"Quoter"}, report.Missing())
	require.Equal(t, []string{"UniswapV3Factory"}, report.Changed())
}

func TestPattern(t *testing.T) {
	t.Parallel()

	m := substitute.Pattern("SwapRouter02").FindStringSubmatch("bytes constant SwapRouter02 = hex'c0ffee';")
	require.Equal(t, []string{"SwapRouter02 = hex'c0ffee'", "c0ffee"}, m)
}
