// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

var errTest = errors.New("non-nil error")

// recorder writes a key then returns whatever its fields say.
type recorder struct {
	messages []lpvm.BankSend
	err      error
	env      lpvm.Env
	deps     lpvm.Deps
	commits  int
}

func (r *recorder) Instantiate(ctx context.Context, deps lpvm.Deps, env lpvm.Env, info lpvm.MessageInfo, msg []byte) (*lpvm.Response, error) {
	return r.Execute(ctx, deps, env, info, msg)
}

func (r *recorder) Execute(_ context.Context, deps lpvm.Deps, env lpvm.Env, info lpvm.MessageInfo, msg []byte) (*lpvm.Response, error) {
	r.env = env
	r.deps = deps
	if err := deps.DB.Put([]byte(info.Sender), msg); err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	res := lpvm.NewResponse().OnCommit(func() {
		r.commits++
	})
	for _, m := range r.messages {
		res.AddMessage(m)
	}
	return res, nil
}

func (*recorder) Query(_ context.Context, deps lpvm.Deps, _ lpvm.Env, msg []byte) ([]byte, error) {
	return deps.DB.Get(msg)
}

func (*recorder) Version() string {
	return "recorder@1"
}

func newTestHost(t *testing.T, c lpvm.Contract) *Host {
	t.Helper()
	h, err := New(DefaultConfig(), memdb.New(), c, log.NewNoOpLogger())
	require.NoError(t, err)
	return h
}

func testAddress(t *testing.T) string {
	t.Helper()
	addr, err := FormatAddress(DefaultHRP, ids.GenerateTestShortID())
	require.NoError(t, err)
	return addr
}

func TestHostCommitsWritesAndSends(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c := &recorder{}
	h := newTestHost(t, c)
	recipient := testAddress(t)
	require.NoError(h.Mint(h.Address(), "ngonka", uint256.NewInt(100)))

	c.messages = []lpvm.BankSend{{ToAddress: recipient, Denom: "ngonka", Amount: uint256.NewInt(40)}}
	_, err := h.Execute(ctx, "alice", []byte("hello"))
	require.NoError(err)

	value, err := h.Query(ctx, []byte("alice"))
	require.NoError(err)
	require.Equal([]byte("hello"), value)

	poolBalance, err := h.Balance(h.Address(), "ngonka")
	require.NoError(err)
	require.Equal(uint64(60), poolBalance.Uint64())
	recipientBalance, err := h.Balance(recipient, "ngonka")
	require.NoError(err)
	require.Equal(uint64(40), recipientBalance.Uint64())

	height, err := h.Height()
	require.NoError(err)
	require.Equal(uint64(2), height)
	require.Equal(uint64(2), c.env.Block.Height)
	require.Equal(h.Address(), c.env.Contract.Address)
	require.Equal(1, c.commits)
}

func TestHostAbortsOnContractError(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c := &recorder{err: errTest}
	h := newTestHost(t, c)

	_, err := h.Execute(ctx, "alice", []byte("hello"))
	require.ErrorIs(err, errTest)

	_, err = h.Query(ctx, []byte("alice"))
	require.Error(err)

	height, err := h.Height()
	require.NoError(err)
	require.Zero(height)
}

func TestHostAbortsOnFailedSend(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c := &recorder{
		messages: []lpvm.BankSend{{ToAddress: testAddress(t), Denom: "ngonka", Amount: uint256.NewInt(1)}},
	}
	h := newTestHost(t, c)

	_, err := h.Execute(ctx, "alice", []byte("hello"))
	require.ErrorIs(err, ErrInsufficientFunds)
	require.Zero(c.commits)

	_, err = h.Query(ctx, []byte("alice"))
	require.Error(err)
}

func TestHostEnv(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c := &recorder{}
	h := newTestHost(t, c)
	now := time.Date(2025, 3, 1, 12, 30, 15, 500, time.UTC)
	h.Clock().Set(now)

	_, err := h.Instantiate(ctx, "alice", []byte("init"))
	require.NoError(err)
	require.Equal(now.Truncate(time.Second), c.env.Block.Time)
	require.Equal(DefaultConfig().ChainID, c.env.Block.ChainID)

	h.Clock().Advance(24 * time.Hour)
	_, err = h.Execute(ctx, "alice", []byte("next"))
	require.NoError(err)
	require.Equal(now.Add(24*time.Hour).Truncate(time.Second), c.env.Block.Time)
}

func TestHostQuerier(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c := &recorder{}
	cfg := DefaultConfig()
	cfg.BondedDenom = ""
	h, err := New(cfg, memdb.New(), c, log.NewNoOpLogger())
	require.NoError(err)
	require.NoError(h.Mint(h.Address(), "ngonka", uint256.NewInt(7)))

	_, err = h.Execute(ctx, "alice", []byte("next"))
	require.NoError(err)

	_, err = c.deps.Querier.BondedDenom(ctx)
	require.ErrorIs(err, ErrNoBondedDenom)

	b, err := c.deps.Querier.Balance(ctx, h.Address(), "ngonka")
	require.NoError(err)
	require.Equal(int64(7), b.Int64())

	require.NoError(c.deps.API.ValidateAddress(testAddress(t)))
	require.ErrorIs(c.deps.API.ValidateAddress("cosmos1invalid"), ErrInvalidAddress)
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	routes := map[string]lpvm.QueryHandler{
		"/test.Query/Echo": func(_ context.Context, data []byte) ([]byte, error) {
			return data, nil
		},
		"/test.Query/Fail": func(context.Context, []byte) ([]byte, error) {
			return nil, errTest
		},
	}
	data := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})

	tests := []struct {
		name        string
		stargate    bool
		request     string
		expected    []byte
		expectedErr error
	}{
		{
			name:     "grpc echo",
			request:  `{"grpc":{"path":"/test.Query/Echo","data":"` + data + `"}}`,
			expected: []byte{1, 2, 3},
		},
		{
			name:     "stargate echo",
			stargate: true,
			request:  `{"stargate":{"path":"/test.Query/Echo","data":"` + data + `"}}`,
			expected: []byte{1, 2, 3},
		},
		{
			name:        "stargate disabled",
			request:     `{"stargate":{"path":"/test.Query/Echo","data":"` + data + `"}}`,
			expectedErr: bridge.ErrSystem,
		},
		{
			name:        "module error",
			request:     `{"grpc":{"path":"/test.Query/Fail","data":""}}`,
			expectedErr: bridge.ErrContract,
		},
		{
			name:        "unknown route",
			request:     `{"grpc":{"path":"/test.Query/Missing","data":""}}`,
			expectedErr: bridge.ErrSystem,
		},
		{
			name:        "unknown kind",
			request:     `{"bank":{}}`,
			expectedErr: bridge.ErrSystem,
		},
		{
			name:        "malformed",
			request:     `{`,
			expectedErr: bridge.ErrSystem,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			r := NewRouter(true, test.stargate)
			r.Register(routes)

			data, err := bridge.ParseResult(r.Handle(ctx, []byte(test.request)))
			require.ErrorIs(err, test.expectedErr)
			if test.expectedErr == nil {
				require.Equal(test.expected, data)
			}
		})
	}
}

func TestBech32Validator(t *testing.T) {
	valid := testAddress(t)
	other, err := FormatAddress("cosmos", ids.GenerateTestShortID())
	require.NoError(t, err)

	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{name: "valid", address: valid, valid: true},
		{name: "empty"},
		{name: "wrong prefix", address: other},
		{name: "upper case", address: "GONKA1" + valid[len("gonka1"):]},
		{name: "bad checksum", address: corrupt(valid)},
		{name: "not bech32", address: "nota-valid-address"},
	}
	v := &Bech32Validator{HRP: DefaultHRP}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := v.ValidateAddress(test.address)
			if test.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

// corrupt replaces the last checksum character.
func corrupt(address string) string {
	last := address[len(address)-1]
	replacement := "q"
	if last == 'q' {
		replacement = "p"
	}
	return address[:len(address)-1] + replacement
}

func TestDeriveAddressDeterministic(t *testing.T) {
	require := require.New(t)

	a, err := DeriveAddress(DefaultHRP, "pool")
	require.NoError(err)
	b, err := DeriveAddress(DefaultHRP, "pool")
	require.NoError(err)
	c, err := DeriveAddress(DefaultHRP, "other")
	require.NoError(err)

	require.Equal(a, b)
	require.NotEqual(a, c)
	require.NoError((&Bech32Validator{HRP: DefaultHRP}).ValidateAddress(a))
}

func TestBankTransfer(t *testing.T) {
	require := require.New(t)

	bank := NewBank(memdb.New())
	require.NoError(bank.Mint("a", "ngonka", uint256.NewInt(10)))
	require.ErrorIs(bank.Transfer("a", "b", "ngonka", uint256.NewInt(11)), ErrInsufficientFunds)
	require.NoError(bank.Transfer("a", "b", "ngonka", uint256.NewInt(10)))

	a, err := bank.Balance("a", "ngonka")
	require.NoError(err)
	require.True(a.IsZero())
	b, err := bank.Balance("b", "ngonka")
	require.NoError(err)
	require.Equal(uint64(10), b.Uint64())

	ceiling := new(uint256.Int).SetAllOne()
	require.ErrorIs(bank.Mint("b", "ngonka", ceiling), ErrSupplyOverflow)
}

func TestClock(t *testing.T) {
	require := require.New(t)

	c := &Clock{}
	now := time.Unix(86_400*3+5, 0)
	c.Set(now)
	require.Equal(now, c.Time())

	c.Advance(time.Hour)
	require.Equal(now.Add(time.Hour), c.Time())

	c.Sync()
	require.WithinDuration(time.Now(), c.Time(), time.Minute)
}
