package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/simpletodo/internal/model"
)

var ignoreID = cmpopts.IgnoreFields(model.Task{}, "ID")

func TestEncode(t *testing.T) {
	t.Run("two tasks match the persisted layout", func(t *testing.T) {
		tasks := []model.Task{
			model.New("Buy milk", ""),
			model.New("Call Alice", "re: project"),
		}
		got, err := Encode(tasks)
		require.NoError(t, err)
		assert.Equal(t,
			`[{"title":"Buy milk","description":""},{"title":"Call Alice","description":"re: project"}]`,
			string(got))
	})

	t.Run("nil and empty lists encode to an empty array", func(t *testing.T) {
		got, err := Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))

		got, err = Encode([]model.Task{})
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
	})

	t.Run("ids are not persisted", func(t *testing.T) {
		got, err := Encode([]model.Task{{ID: "abc", Title: "x"}})
		require.NoError(t, err)
		assert.NotContains(t, string(got), "abc")
	})

	t.Run("html characters are kept literal", func(t *testing.T) {
		got, err := Encode([]model.Task{{Title: "a < b & c"}})
		require.NoError(t, err)
		assert.Equal(t, `[{"title":"a < b & c","description":""}]`, string(got))
	})
}

func TestDecode(t *testing.T) {
	t.Run("empty array and blank input are empty lists", func(t *testing.T) {
		for _, in := range []string{"[]", "", "  \n", "[ ]"} {
			got, err := Decode([]byte(in))
			require.NoError(t, err, "input %q", in)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		}
	})

	t.Run("description defaults to empty", func(t *testing.T) {
		got, err := Decode([]byte(`[{"title":"a"},{"title":"b","description":null}]`))
		require.NoError(t, err)
		want := []model.Task{{Title: "a"}, {Title: "b"}}
		if diff := cmp.Diff(want, got, ignoreID); diff != "" {
			t.Errorf("Decode mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		got, err := Decode([]byte(`[{"title":"a","description":"d","done":true}]`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "d", got[0].Description)
	})

	t.Run("decoded tasks get ids", func(t *testing.T) {
		got, err := Decode([]byte(`[{"title":"a"},{"title":"a"}]`))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.NotEmpty(t, got[0].ID)
		assert.NotEqual(t, got[0].ID, got[1].ID)
	})

	malformed := map[string]string{
		"invalid json":        `[{"title":`,
		"object not array":    `{"title":"a"}`,
		"missing title":       `[{"description":"d"}]`,
		"numeric title":       `[{"title":3}]`,
		"element not object":  `["a"]`,
		"numeric description": `[{"title":"a","description":7}]`,
	}
	for name, in := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))

			var fe *FormatError
			assert.True(t, errors.As(err, &fe))
		})
	}

	t.Run("format error names the failing element", func(t *testing.T) {
		_, err := Decode([]byte(`[{"title":"ok"},{"description":"d"}]`))
		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "1", fe.Path)
	})
}

func TestRoundTrip(t *testing.T) {
	lists := [][]model.Task{
		{},
		{model.New("Buy milk", "")},
		{model.New("Call Alice", "re: project"), model.New("Call Alice", "re: project")},
		{model.New(`quote " and \ slash`, "line\nbreak"), model.New("ünïcødé ✔", "tab\t")},
	}
	for _, tasks := range lists {
		data, err := Encode(tasks)
		require.NoError(t, err)
		got, err := Decode(data)
		require.NoError(t, err)
		if diff := cmp.Diff(tasks, got, ignoreID, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}
