package partial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type character struct {
	Name   string   `json:"name"`
	Traits []string `json:"traits"`
}

type title string

func TestDefaultUnmarshal(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		v, err := DefaultUnmarshal[character]()("```json\n{\"name\":\"Mira\",\"traits\":[\"brave\"]}\n```")
		require.NoError(t, err)
		assert.Equal(t, character{Name: "Mira", Traits: []string{"brave"}}, v)
	})

	t.Run("struct from invalid json", func(t *testing.T) {
		_, err := DefaultUnmarshal[character]()(`{"name":"Mi`)
		assert.Error(t, err)
	})

	t.Run("string kinds keep the text", func(t *testing.T) {
		s, err := DefaultUnmarshal[string]()("```raw```")
		require.NoError(t, err)
		assert.Equal(t, "```raw```", s)

		named, err := DefaultUnmarshal[title]()("The Long Night")
		require.NoError(t, err)
		assert.Equal(t, title("The Long Night"), named)
	})

	t.Run("gjson result", func(t *testing.T) {
		v, err := DefaultUnmarshal[gjson.Result]()(`{"scenes":[{"title":"Arrival"}]}`)
		require.NoError(t, err)
		assert.Equal(t, "Arrival", v.Get("scenes.0.title").String())

		_, err = DefaultUnmarshal[gjson.Result]()(`{"scenes":`)
		assert.Error(t, err)
	})
}
