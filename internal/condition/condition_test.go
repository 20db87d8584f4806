package condition_test

import (
	"fmt"
	"testing"

	"codeberg.org/mutker/pcadapter/internal/condition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConditionIsNormal(t *testing.T) {
	c := condition.New("batteryState")

	assert.Equal(t, "batteryState", c.Name())
	assert.Equal(t, condition.Normal, c.Level())
	assert.Zero(t, c.Len())
	assert.Nil(t, c.Entries())
}

func TestSetNormalClearsDistinctCodes(t *testing.T) {
	c := condition.New("acState")

	for i := 0; i < 10; i++ {
		code := fmt.Sprintf("E%d", i)
		if i%2 == 0 {
			c.AssertFault(code, "fault "+code)
		} else {
			c.AssertWarning(code, "warning "+code)
		}
	}
	require.Equal(t, 10, c.Len())

	c.SetNormal()

	assert.Equal(t, condition.Normal, c.Level())
	assert.Zero(t, c.Len())
}

func TestReassertReplacesInPlace(t *testing.T) {
	c := condition.New("batteryState")

	c.AssertWarning("255", "Unknown")
	c.AssertFault("GetSystemPowerStatus", "access denied")
	for i := 0; i < 100; i++ {
		c.AssertWarning("255", fmt.Sprintf("Unknown #%d", i))
	}

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "255", entries[0].NativeCode, "replacement keeps position")
	assert.Equal(t, "Unknown #99", entries[0].Message)
	assert.Equal(t, "GetSystemPowerStatus", entries[1].NativeCode)
}

func TestReassertCanChangeSeverity(t *testing.T) {
	c := condition.New("access")

	c.AssertFault("io", "broken")
	require.Equal(t, condition.Fault, c.Level())

	c.AssertWarning("io", "degraded")
	assert.Equal(t, condition.Warning, c.Level())
	assert.Equal(t, 1, c.Len())
}

func TestLevelIsMaxRegardlessOfOrder(t *testing.T) {
	orders := [][]condition.Level{
		{condition.Warning, condition.Fault},
		{condition.Fault, condition.Warning},
		{condition.Warning, condition.Warning},
		{condition.Fault},
	}
	expected := []condition.Level{condition.Fault, condition.Fault, condition.Warning, condition.Fault}

	for i, order := range orders {
		c := condition.New("x")
		for j, level := range order {
			code := fmt.Sprintf("c%d", j)
			if level == condition.Fault {
				c.AssertFault(code, "")
			} else {
				c.AssertWarning(code, "")
			}
		}
		assert.Equal(t, expected[i], c.Level(), "order %d", i)
	}
}

func TestClearRemovesSingleCode(t *testing.T) {
	c := condition.New("batteryState")
	c.AssertFault("a", "first")
	c.AssertWarning("b", "second")

	assert.True(t, c.Clear("a"))
	assert.False(t, c.Clear("a"))
	assert.Equal(t, condition.Warning, c.Level())
	assert.Equal(t, []string{"b"}, c.State().NativeCodes())
}

func TestOptionsAndCopies(t *testing.T) {
	c := condition.New("acState")
	c.AssertWarning("255", "Unknown", condition.WithQualifier("LOW"), condition.WithSubtype("POWER"))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "LOW", entries[0].Qualifier)
	assert.Equal(t, "POWER", entries[0].Subtype)

	entries[0].Message = "mutated"
	assert.Equal(t, "Unknown", c.Entries()[0].Message, "Entries returns a copy")

	state := c.State()
	c.SetNormal()
	assert.Equal(t, condition.Warning, state.Level, "State is a point-in-time copy")
	assert.Len(t, state.Entries, 1)
}

func TestLevelText(t *testing.T) {
	text, err := condition.Fault.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "FAULT", string(text))
	assert.Equal(t, "NORMAL", condition.Normal.String())
	assert.Equal(t, "WARNING", condition.Warning.String())
}
