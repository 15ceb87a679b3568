package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriStateZeroValueIsUnset(t *testing.T) {
	var t3 TriState
	assert.Equal(t, Unset, t3)
	assert.False(t, t3.Answered())
	assert.False(t, t3.Bool())
}

func TestTriStateDistinguishesFalseFromUnset(t *testing.T) {
	assert.True(t, False.Answered())
	assert.False(t, False.Bool())
	assert.True(t, True.Bool())
}

func TestTriStateJSON(t *testing.T) {
	type payload struct {
		HasReceipt TriState `json:"hasReceipt,omitempty"`
	}

	t.Run("absent field stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.Equal(t, Unset, p.HasReceipt)
	})

	t.Run("null stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"hasReceipt":null}`), &p))
		assert.Equal(t, Unset, p.HasReceipt)
	})

	t.Run("explicit no survives a round trip", func(t *testing.T) {
		out, err := json.Marshal(payload{HasReceipt: False})
		require.NoError(t, err)
		assert.Equal(t, `{"hasReceipt":false}`, string(out))

		var p payload
		require.NoError(t, json.Unmarshal(out, &p))
		assert.Equal(t, False, p.HasReceipt)
	})

	t.Run("rejects non-boolean input", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"hasReceipt":"yes"}`), &p))
	})
}

func TestRatingFirst(t *testing.T) {
	assert.Equal(t, 0, Rating(nil).First())
	assert.Equal(t, 0, Rating{}.First())
	assert.Equal(t, 4, Rating{4}.First())
	assert.Equal(t, 4, Rating{4, 9}.First(), "only the first element is meaningful")
}
