package converter

import (
	"errors"
	"iter"
	"math/big"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listLike []int

type dictLike map[int]string

type toListObj struct{}

func (toListObj) ToList() []any { return []any{1} }

// iterObj 产出 n 次 n
type iterObj struct{ n int }

func (o iterObj) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := 0; i < o.n; i++ {
			if !yield(o.n) {
				return
			}
		}
	}
}

type plain struct {
	Name string `json:"name"`
}

func TestDefault(t *testing.T) {
	id := uuid.MustParse("3d7b1c0e-e83b-40bc-96ef-bf6c95f3cb7c")
	doubler := func(s string) LazyString { return Lazy(func() string { return s + s }) }

	tests := []struct {
		name   string
		coerce bool
		input  any
		want   any
	}{
		{"decimal as string", true, decimal.RequireFromString("1.0"), "1.0"},
		{"decimal as number", false, decimal.RequireFromString("1.5"), 1.5},
		{"decimal integer as string", true, decimal.NewFromInt(42), "42"},
		{"decimal positive exponent", true, decimal.RequireFromString("1E+2"), "100"},
		{"null decimal", true, decimal.NullDecimal{}, nil},
		{"big float as string", true, big.NewFloat(2.25), "2.25"},
		{"big float as number", false, big.NewFloat(2.25), 2.25},
		{"uuid", false, id, "3d7b1c0e-e83b-40bc-96ef-bf6c95f3cb7c"},
		{"null uuid", false, uuid.NullUUID{UUID: id, Valid: true}, "3d7b1c0e-e83b-40bc-96ef-bf6c95f3cb7c"},
		{"lazy string", false, doubler("hello"), "hellohello"},
		{"error detail", false, ErrorDetail{Message: "Test", Code: "invalid"}, "Test"},
		{"bytes", false, []byte("raw"), "raw"},
		{"return dict", false, ReturnDict{Data: map[string]any{"a": "b"}}, map[string]any{"a": "b"}},
		{"return list", false, ReturnList{Items: []any{map[string]any{"1": 1}}}, []any{map[string]any{"1": 1}}},
		{"list like", false, listLike{1}, []any{1}},
		{"array", false, [2]string{"x", "y"}, []any{"x", "y"}},
		{"dict like", false, dictLike{1: "a"}, map[string]any{"1": "a"}},
		{"to list", false, toListObj{}, []any{1}},
		{"iterable", false, iterObj{n: 1}, []any{1}},
		{"iter seq", false, slices.Values([]any{"a", "b"}), []any{"a", "b"}},
		{"empty iterable", false, iterObj{n: 0}, []any{}},
		{"nil pointer", false, (*plain)(nil), nil},
		{"pointer", false, &plain{Name: "x"}, plain{Name: "x"}},
		{"struct passes through", false, plain{Name: "x"}, plain{Name: "x"}},
		{"time passes through", false, time.Unix(0, 0).UTC(), time.Unix(0, 0).UTC()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Options{CoerceDecimalToString: tc.coerce})
			got, err := c.Default(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDefaultUnknownPassesThrough(t *testing.T) {
	ch := make(chan int)
	got, err := New(Options{}).Default(ch)
	require.NoError(t, err)
	assert.Equal(t, ch, got)
}

func TestDefaultUnsupportedMapKey(t *testing.T) {
	_, err := New(Options{}).Default(map[plain]int{{Name: "k"}: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported map key type")
}

func TestWalk(t *testing.T) {
	c := New(Options{CoerceDecimalToString: true})
	id := uuid.New()

	input := map[string]any{
		"id":    id,
		"price": decimal.RequireFromString("9.90"),
		"tags":  listLike{1, 2},
		"nested": []any{
			ReturnDict{Data: map[string]any{"lazy": Lazy(func() string { return "v" })}},
			iterObj{n: 2},
		},
		"plain": "text",
	}

	got, err := Walk(input, c.Default)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":    id.String(),
		"price": "9.90",
		"tags":  []any{1, 2},
		"nested": []any{
			map[string]any{"lazy": "v"},
			[]any{2, 2},
		},
		"plain": "text",
	}, got)
}

func TestWalkNilHook(t *testing.T) {
	input := map[string]any{"id": uuid.Nil}
	got, err := Walk(input, nil)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestWalkHookError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Walk([]any{plain{}}, func(any) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

type ping struct{}
type pong struct{}

func TestWalkRecursionLimit(t *testing.T) {
	hook := func(v any) (any, error) {
		if _, ok := v.(ping); ok {
			return pong{}, nil
		}
		return ping{}, nil
	}
	_, err := Walk(ping{}, hook)
	assert.ErrorIs(t, err, ErrDefaultDepth)
}

func TestLegacy(t *testing.T) {
	c := New(Options{CoerceDecimalToString: true})
	ts := time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.UTC)

	got, err := c.Legacy(false)(ts)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05.123Z", got)

	got, err = c.Legacy(true)(ts)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05.123456Z", got)

	got, err = c.Legacy(false)(90 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "90.0", got)

	// 非时间值交给 Default
	got, err = c.Legacy(false)(decimal.RequireFromString("1.0"))
	require.NoError(t, err)
	assert.Equal(t, "1.0", got)
}

func TestFormatDateTime(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	assert.Equal(t, "2024-06-01T12:00:00+01:00", FormatDateTime(time.Date(2024, 6, 1, 12, 0, 0, 0, cet), false))
	assert.Equal(t, "2024-06-01T12:00:00.000-05:30",
		FormatDateTime(time.Date(2024, 6, 1, 12, 0, 0, 500, time.FixedZone("X", -(5*3600+1800))), false))
	assert.Equal(t, "1.5", FormatDuration(1500*time.Millisecond))
}

func TestLegacyNilHook(t *testing.T) {
	assert.Nil(t, DateTime(nil, false))
}

type Base struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type priced struct {
	Base
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Count  int             `json:"count,string"`
	Note   string          `json:"note,omitempty"`
	Skip   string          `json:"-"`
	Plain  plain
	hidden int
}

type node struct {
	Next  *node      `json:"next"`
	Label LazyString `json:"label"`
}

func TestWalkStructFields(t *testing.T) {
	id := uuid.MustParse("3d7b1c0e-e83b-40bc-96ef-bf6c95f3cb7c")
	c := New(Options{CoerceDecimalToString: false})

	got, err := Walk(map[string]any{"item": priced{
		Base:   Base{ID: id, Name: "inner"},
		Name:   "outer",
		Price:  decimal.RequireFromString("1.5"),
		Count:  3,
		Skip:   "x",
		Plain:  plain{Name: "p"},
		hidden: 1,
	}}, c.Default)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"item": map[string]any{
		"name":  "outer",
		"price": 1.5,
		"count": "3",
		"Plain": plain{Name: "p"},
		"id":    id.String(),
	}}, got)
}

func TestWalkStructUnchanged(t *testing.T) {
	c := New(Options{CoerceDecimalToString: true})

	got, err := Walk([]any{plain{Name: "x"}, &plain{Name: "y"}}, c.Default)
	require.NoError(t, err)
	assert.Equal(t, []any{plain{Name: "x"}, plain{Name: "y"}}, got)

	ts := time.Unix(0, 0).UTC()
	got, err = Walk(ts, c.Default)
	require.NoError(t, err)
	assert.Equal(t, ts, got)
}

func TestWalkStructLazyField(t *testing.T) {
	c := New(Options{})
	got, err := Walk(node{Label: Lazy(func() string { return "v" })}, c.Default)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"next": nil, "label": "v"}, got)
}

func TestWalkSelfReference(t *testing.T) {
	c := New(Options{})

	m := map[string]any{}
	m["self"] = m
	_, err := Walk(m, c.Default)
	assert.ErrorIs(t, err, ErrDefaultDepth)

	s := []any{nil}
	s[0] = s
	_, err = Walk(s, c.Default)
	assert.ErrorIs(t, err, ErrDefaultDepth)

	n := &node{Label: Lazy(func() string { return "loop" })}
	n.Next = n
	_, err = Walk(n, c.Default)
	assert.ErrorIs(t, err, ErrDefaultDepth)
}

func TestWalkDeepNestingWithinLimit(t *testing.T) {
	var v any = "leaf"
	for range 100 {
		v = []any{v}
	}
	got, err := Walk(v, New(Options{}).Default)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}
