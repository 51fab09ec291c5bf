package params_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/params"
)

func TestStore_SetGetHas(t *testing.T) {
	t.Parallel()

	s := params.New()
	_, ok := s.Get("missing")
	require.False(t, ok, "absent key must report not present")
	require.False(t, s.Has("missing"))

	s.Set("empty", "")
	v, ok := s.Get("empty")
	require.True(t, ok, "key with empty value must be present")
	require.Equal(t, "", v)
	require.True(t, s.Has("empty"))

	s.Set("k", "v1")
	s.Set("k", "v2")
	v, ok = s.Get("k")
	require.True(t, ok)
	require.Equal(t, "v2", v)
	require.Equal(t, 2, s.Len())
}

func TestStore_OrderIsStable(t *testing.T) {
	t.Parallel()

	s := params.New()
	s.Set("b", "1")
	s.Set("a", "2")
	s.Set("c", "3")
	s.Set("b", "overwritten")

	require.Equal(t, []string{"b", "a", "c"}, s.Keys(), "overwrite must keep the original position")

	s.Remove("a")
	require.Equal(t, []string{"b", "c"}, s.Keys())
	require.False(t, s.Has("a"))

	s.Set("a", "again")
	require.Equal(t, []string{"b", "c", "a"}, s.Keys())
	v, _ := s.Get("c")
	require.Equal(t, "3", v, "index must stay consistent after removal")

	s.Remove("does-not-exist")
	require.Equal(t, 3, s.Len())
}

func TestStore_MergeAndClone(t *testing.T) {
	t.Parallel()

	base := params.New()
	base.Set("x", "1")
	base.Set("y", "2")

	other := params.New()
	other.Set("y", "20")
	other.Set("z", "30")

	base.Merge(other)
	require.Equal(t, []params.Param{
		{Name: "x", Value: "1"},
		{Name: "y", Value: "20"},
		{Name: "z", Value: "30"},
	}, base.Params())

	clone := base.Clone()
	clone.Set("x", "changed")
	v, _ := base.Get("x")
	require.Equal(t, "1", v, "clone must not share storage with the original")

	base.Merge(base)
	base.Merge(nil)
	require.Equal(t, 3, base.Len())
	require.Equal(t, map[string]string{"x": "1", "y": "20", "z": "30"}, base.Map())
}

func TestStore_Each(t *testing.T) {
	t.Parallel()

	s := params.New()
	s.Set("one", "1")
	s.Set("two", "2")

	var seen []string
	s.Each(func(key, value string) {
		seen = append(seen, key+"="+value)
	})
	require.Equal(t, []string{"one=1", "two=2"}, seen)
}
