package fileorg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Invoices ", "billing documents", "#ff0000", 1)
	require.NoError(t, err)

	assert.Equal(t, "Invoices", c.Name())
	assert.Equal(t, "#FF0000", c.Color())

	c2, err := NewCategory("Logs", "", "", 1)
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, c2.Color())
}

func TestNewCategory_Validation(t *testing.T) {
	_, err := NewCategory("", "", "", 1)
	assert.Error(t, err)
	_, err = NewCategory("x", "", "red", 1)
	assert.Error(t, err)
	_, err = NewCategory(strings.Repeat("n", 101), "", "", 1)
	assert.Error(t, err)
}

func TestCategory_Update(t *testing.T) {
	c, err := NewCategory("Logs", "", "", 1)
	require.NoError(t, err)

	require.NoError(t, c.Update("Server Logs", "from prod", "#00aa00"))
	assert.Equal(t, "Server Logs", c.Name())
	assert.Error(t, c.Update("", "", ""))
	assert.Equal(t, "Server Logs", c.Name())
}

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Urgent", "urgent", false},
		{"  needs   review ", "needs review", false},
		{"v2_final-draft", "v2_final-draft", false},
		{"", "", true},
		{"drop;table", "", true},
		{strings.Repeat("t", 51), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeTagName(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTagNames_Dedupes(t *testing.T) {
	got, err := NormalizeTagNames([]string{"Invoice", "invoice", "Q1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice", "q1"}, got)
}
