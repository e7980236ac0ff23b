package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chazu/protobind/pkg/capability"
	"github.com/chazu/protobind/pkg/decl"
)

func samplePairs() []capability.Pair {
	return []capability.Pair{
		{TypeName: "Window", Descriptor: capability.ResourceIdentifier{}},
		{TypeName: "GetWindowRequest", Descriptor: capability.Request{Opcode: 3, Reply: decl.Named("GetWindowReply")}},
		{TypeName: "Drawable", Descriptor: capability.LegacyConversion{From: "Window"}},
		{TypeName: "Drawable", Descriptor: capability.ResourceIdentifier{}},
		{TypeName: "Gravity", Descriptor: capability.EnumDefaultValue{Variant: "Forget"}},
		{TypeName: "KeyPressEvent", Descriptor: capability.Event{Opcode: 2}},
	}
}

func TestRunOrdersByTypeThenKind(t *testing.T) {
	res, err := Run(context.Background(), samplePairs(), Options{Strict: true})
	require.NoError(t, err)
	require.Len(t, res.Declarations, 6)
	assert.Empty(t, res.Warnings)

	var got []string
	for _, d := range res.Declarations {
		got = append(got, d.SelfType+":"+d.Contract.String())
	}
	want := []string{
		"Drawable:XidType",
		"Drawable:From<Window>",
		"GetWindowRequest:Request",
		"Gravity:Default",
		"KeyPressEvent:Event",
		"Window:XidType",
	}
	assert.Equal(t, want, got)
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	var pairs []capability.Pair
	for i := 0; i < 200; i++ {
		pairs = append(pairs, capability.Pair{
			TypeName:   fmt.Sprintf("Event%03d", (i*37)%200),
			Descriptor: capability.Event{Opcode: uint64(i % 256)},
		})
	}

	base, err := Run(context.Background(), pairs, Options{Workers: 1})
	require.NoError(t, err)

	for _, workers := range []int{2, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			res, err := Run(context.Background(), pairs, Options{Workers: workers})
			require.NoError(t, err)
			if diff := cmp.Diff(base.Declarations, res.Declarations); diff != "" {
				t.Errorf("output depends on worker count (-1 worker +%d):\n%s", workers, diff)
			}
		})
	}
}

func TestRunStrictRejects(t *testing.T) {
	pairs := []capability.Pair{
		{TypeName: "BigEvent", Descriptor: capability.Event{Opcode: 256}},
		{TypeName: "Gravity", Descriptor: capability.EnumDefaultValue{Variant: "Sideways"}},
	}
	variants := capability.Variants{"Gravity": {"Forget"}}

	_, err := Run(context.Background(), pairs, Options{Strict: true, Variants: variants})
	require.Error(t, err)
	assert.ErrorIs(t, err, capability.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "BigEvent")
	assert.Contains(t, err.Error(), "Sideways")
}

func TestRunLenientNarrows(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	pairs := []capability.Pair{
		{TypeName: "BigEvent", Descriptor: capability.Event{Opcode: 256}},
	}
	res, err := Run(context.Background(), pairs, Options{Strict: false})
	require.NoError(t, err)
	require.Len(t, res.Declarations, 1)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 1, logs.FilterMessage("accepting invalid capability").Len())

	c, ok := res.Declarations[0].Members[0].(decl.Constant)
	require.True(t, ok)
	assert.Equal(t, uint64(0), c.Value.Value)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, samplePairs(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	res, err := Run(context.Background(), nil, Options{Strict: true})
	require.NoError(t, err)
	assert.Empty(t, res.Declarations)
}
