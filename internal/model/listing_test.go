package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_JSON(t *testing.T) {
	t.Run("unknown keys are kept", func(t *testing.T) {
		var l Listing
		require.NoError(t, json.Unmarshal([]byte(`{"id":3,"post":"Venda","vagas":1,"destaque":false}`), &l))

		assert.Equal(t, 3, l.ID)
		assert.Equal(t, "Venda", l.Post)
		assert.Len(t, l.Extra, 2)
		assert.NotContains(t, l.Extra, "post")

		out, err := json.Marshal(l)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Equal(t, float64(1), m["vagas"])
		assert.Equal(t, false, m["destaque"])
		assert.Equal(t, "Venda", m["post"])
	})

	t.Run("fields win over extra", func(t *testing.T) {
		l := Listing{ID: 4, Title: "Sala", Extra: map[string]json.RawMessage{"title": json.RawMessage(`"old"`)}}

		out, err := json.Marshal(l)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Equal(t, "Sala", m["title"])
	})

	t.Run("no extra means no overflow", func(t *testing.T) {
		var l Listing
		require.NoError(t, json.Unmarshal([]byte(`{"id":5,"title":"Loja"}`), &l))
		assert.Nil(t, l.Extra)
	})
}

func TestListing_PrimaryImage(t *testing.T) {
	assert.Equal(t, "", Listing{}.PrimaryImage())
	assert.Equal(t, "a", Listing{Images: []string{"a", "b"}}.PrimaryImage())
}
