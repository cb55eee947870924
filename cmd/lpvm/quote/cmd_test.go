// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quote

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "first tier",
			args: []string{"--usd-amount=100000000"},
		},
		{
			name: "second tier",
			args: []string{"--usd-amount=100000000", "--total-sold=250000000000"},
		},
	}
	expected := []map[string]any{
		{"tier": 0.0, "priceUSD": "25000", "tokens": "4000000000", "nextTierAt": "250000000000", "nextTierPrice": "32500"},
		{"tier": 1.0, "priceUSD": "32500", "tokens": "3076923076", "nextTierAt": "500000000000", "nextTierPrice": "42250"},
	}
	for i, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			cmd := Command()
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetArgs(test.args)
			require.NoError(cmd.Execute())

			reply := map[string]any{}
			require.NoError(json.Unmarshal(out.Bytes(), &reply))
			require.Equal(expected[i], reply)
		})
	}
}

func TestQuoteInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--usd-amount=-1"},
		{"--tier-multiplier=abc"},
		{"--base-price-usd=340282366920938463463374607431768211456"},
	} {
		cmd := Command()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		require.Error(t, cmd.Execute(), args)
	}
}
