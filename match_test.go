package passentropy

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatchType(t *testing.T) {
	codes := map[uint32]MatchType{
		0: NonMatch, 1: Brute, 2: Dictionary, 3: DictionaryLeet, 4: UserWord,
		5: UserWordLeet, 6: Repeat, 7: Sequence, 8: Spatial, 9: Date, 10: Year,
		32: Multiple,
	}
	for code, want := range codes {
		got, err := ParseMatchType(code)
		require.NoError(t, err, "code %d", code)
		assert.Equal(t, want, got)
	}

	for _, code := range []uint32{11, 31, 33, 1 << 20} {
		_, err := ParseMatchType(code)
		assert.True(t, errors.Is(err, ErrUnknownMatchType), "code %d: %v", code, err)
	}
}

func TestMatchTypeText(t *testing.T) {
	for code := range matchTypeNames {
		text, err := code.MarshalText()
		require.NoError(t, err)

		var back MatchType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, code, back)
	}

	var mt MatchType
	assert.ErrorIs(t, mt.UnmarshalText([]byte("guess")), ErrUnknownMatchType)
	_, err := MatchType(12).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownMatchType)
	assert.Equal(t, "MatchType(12)", MatchType(12).String())
	assert.Equal(t, "user_word_leet", UserWordLeet.String())
}

func TestMatchJSON(t *testing.T) {
	m := Match{Begin: 2, Length: 3, Entropy: 1.5, Type: Sequence, Token: "abc"}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"begin":2,"length":3,"entropy":1.5,"type":"sequence","token":"abc"}`, string(data))
	assert.Equal(t, 5, m.End())
}
