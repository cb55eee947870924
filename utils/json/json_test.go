// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	stdjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64Unmarshal(t *testing.T) {
	require := require.New(t)

	var v Uint64
	require.NoError(stdjson.Unmarshal([]byte(`"42"`), &v))
	require.Equal(Uint64(42), v)

	require.NoError(stdjson.Unmarshal([]byte(`43`), &v))
	require.Equal(Uint64(43), v)

	require.Error(stdjson.Unmarshal([]byte(`"-1"`), &v))
}

func TestUint256Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{
			name:     "quoted",
			input:    `"300000000000000000000000"`,
			expected: "300000000000000000000000",
		},
		{
			name:     "bare",
			input:    `25000`,
			expected: "25000",
		},
		{
			name:      "empty string",
			input:     `""`,
			expectErr: true,
		},
		{
			name:      "negative",
			input:     `"-5"`,
			expectErr: true,
		},
		{
			name:      "hex",
			input:     `"0x10"`,
			expectErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			var v Uint256
			err := stdjson.Unmarshal([]byte(test.input), &v)
			if test.expectErr {
				require.Error(err)
				return
			}
			require.NoError(err)
			require.Equal(test.expected, v.String())
		})
	}
}

func TestUint256NullKeepsValue(t *testing.T) {
	require := require.New(t)

	v := FromUint64(9)
	require.NoError(stdjson.Unmarshal([]byte(Null), &v))
	require.Equal("9", v.String())
}

func TestUint256Marshal(t *testing.T) {
	require := require.New(t)

	b, err := stdjson.Marshal(struct {
		Amount Uint256 `json:"amount"`
	}{Amount: FromUint64(1300)})
	require.NoError(err)
	require.JSONEq(`{"amount":"1300"}`, string(b))
}
