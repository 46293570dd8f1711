package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_CarouselBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.ElementsMatch(t, []string{"left", "h"}, km.Left.Keys())
	assert.ElementsMatch(t, []string{"right", "l"}, km.Right.Keys())
	assert.ElementsMatch(t, []string{"enter", " "}, km.Select.Keys())
	assert.Equal(t, []string{"r"}, km.Reload.Keys())
	assert.Len(t, km.Indicator.Keys(), 9)
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestCarouselHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.CarouselHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, km.Left, bindings[0])
	assert.Equal(t, km.Back, bindings[3])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 3)    // 3 groups
	assert.Len(t, bindings[0], 3) // Up, Down, Select
	assert.Len(t, bindings[1], 4) // Left, Right, Indicator, Reload
	assert.Len(t, bindings[2], 4) // Back, Clear, Help, Quit
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("h", km.Left))
	assert.True(t, Matches(" ", km.Select))
	assert.True(t, Matches("7", km.Indicator))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("0", km.Indicator))
	assert.False(t, Matches("down", km.Up))
}

func TestIndicatorIndex(t *testing.T) {
	tests := []struct {
		key   string
		index int
		ok    bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 0, false},
		{"a", 0, false},
		{"12", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			index, ok := IndicatorIndex(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Left", km.Left},
		{"Right", km.Right},
		{"Select", km.Select},
		{"Reload", km.Reload},
		{"Indicator", km.Indicator},
		{"Clear", km.Clear},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
