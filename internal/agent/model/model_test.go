package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(c.String())
		require.True(t, ok, c)
		assert.Equal(t, c, got)
		assert.True(t, c.Valid())
	}

	for _, raw := range []string{"", "Tecnico", " geral", "technical", "pizza"} {
		_, ok := ParseCategory(raw)
		assert.False(t, ok, "input %q", raw)
	}
	assert.False(t, Category("pizza").Valid())
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories()
	require.Equal(t, []Category{Technical, Commercial, Support, General}, cats)

	cats[0] = "mutated"
	assert.Equal(t, Technical, Categories()[0])
}

func TestHistoryAppendDoesNotWriteReceiver(t *testing.T) {
	base := make(History, 1, 8)
	base[0] = UserTurn("oi")
	spare := base[:cap(base)]

	next := base.Append(UserTurn("my server won't start"), AssistantTurn("check your logs"))

	assert.Len(t, base, 1)
	assert.Equal(t, Turn{}, spare[1], "spare capacity of the receiver must stay untouched")

	want := History{
		{Role: RoleUser, Content: "oi"},
		{Role: RoleUser, Content: "my server won't start"},
		{Role: RoleAssistant, Content: "check your logs"},
	}
	if diff := cmp.Diff(want, next); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}

	next[0] = AssistantTurn("changed")
	assert.Equal(t, "oi", base[0].Content)
}

func TestHistoryCloneAndTail(t *testing.T) {
	var empty History
	assert.NotNil(t, empty.Clone())
	assert.Zero(t, empty.Clone().Len())

	h := History{UserTurn("a"), AssistantTurn("b"), UserTurn("c")}
	assert.Equal(t, History{AssistantTurn("b"), UserTurn("c")}, h.Tail(2))
	assert.Equal(t, h, h.Tail(0))
	assert.Equal(t, h, h.Tail(10))

	tail := h.Tail(1)
	tail[0] = UserTurn("z")
	assert.Equal(t, "c", h[2].Content)
}

func TestComputeCost(t *testing.T) {
	c := ComputeCost("gemini-2.5-flash", &schema.TokenUsage{
		PromptTokens:     1_000_000,
		CompletionTokens: 2_000_000,
		TotalTokens:      3_000_000,
	})
	assert.InDelta(t, 0.30, c.InputCost, 1e-9)
	assert.InDelta(t, 5.00, c.OutputCost, 1e-9)
	assert.InDelta(t, 5.30, c.TotalCost, 1e-9)
	assert.Equal(t, 3_000_000, c.TotalTokens)

	unknown := ComputeCost("mystery-model", &schema.TokenUsage{PromptTokens: 10})
	assert.Zero(t, unknown.TotalCost)
	assert.Equal(t, 10, unknown.PromptTokens)

	assert.Equal(t, UsageCost{Model: "x"}, ComputeCost("x", nil))
}
