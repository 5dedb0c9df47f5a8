package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserState_Helpers(t *testing.T) {
	state := &UserState{
		Data: map[string]interface{}{
			"int64":  int64(123),
			"int":    123,
			"float":  float64(123),
			"string": "hello",
		},
	}

	t.Run("NilData", func(t *testing.T) {
		nilState := &UserState{}
		assert.Equal(t, int64(0), nilState.GetInt64("any"))
		assert.Equal(t, "", nilState.GetString("any"))
	})

	t.Run("GetInt64", func(t *testing.T) {
		assert.Equal(t, int64(123), state.GetInt64("int64"))
		assert.Equal(t, int64(123), state.GetInt64("int"))
		// JSON числа после Redis приходят как float64
		assert.Equal(t, int64(123), state.GetInt64("float"))
		assert.Equal(t, int64(0), state.GetInt64("string"))
		assert.Equal(t, int64(0), state.GetInt64("missing"))
	})

	t.Run("GetString", func(t *testing.T) {
		assert.Equal(t, "hello", state.GetString("string"))
		assert.Equal(t, "", state.GetString("int"))
		assert.Equal(t, "", state.GetString("missing"))
	})

	t.Run("SetOnNilData", func(t *testing.T) {
		s := &UserState{}
		s.Set("key", "value")
		assert.Equal(t, "value", s.GetString("key"))
	})
}

func TestMatchKickoffTime(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	m := &Match{Date: "15.06.2025", Time: "18:00"}
	kickoff, err := m.KickoffTime(loc)
	require.NoError(t, err)
	assert.Equal(t, 2025, kickoff.Year())
	assert.Equal(t, time.June, kickoff.Month())
	assert.Equal(t, 18, kickoff.Hour())
	assert.Equal(t, loc, kickoff.Location())

	bad := &Match{Date: "2025-06-15", Time: "18:00"}
	_, err = bad.KickoffTime(loc)
	assert.Error(t, err)
}

func TestMatchIsExpired(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	m := &Match{Date: "15.06.2025", Time: "18:00"}
	kickoff, _ := m.KickoffTime(loc)

	assert.False(t, m.IsExpired(kickoff.Add(-time.Minute), loc))
	// Ровно в момент начала ставки уже не принимаются
	assert.True(t, m.IsExpired(kickoff, loc))
	assert.True(t, m.IsExpired(kickoff.Add(time.Minute), loc))

	broken := &Match{Date: "bad", Time: "date"}
	assert.True(t, broken.IsExpired(time.Now(), loc))
}

func TestMatchTitle(t *testing.T) {
	m := &Match{Team1: "Спартак", Team2: "Зенит"}
	assert.Equal(t, "Спартак — Зенит", m.Title())
}
