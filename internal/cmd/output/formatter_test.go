package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"Wide", FormatWide, false},
		{"", Format(""), false},
		{"xml", "", true},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))

	tf, ok := NewFormatter(FormatTable).(*TableFormatter)
	require.True(t, ok)
	assert.False(t, tf.Wide)

	tf, ok = NewFormatter(FormatWide).(*TableFormatter)
	require.True(t, ok)
	assert.True(t, tf.Wide)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
	assert.Equal(t, FormatJSON, DetectFormat("json"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Indent: "  "}

	input := map[string]any{"outcome": "MATCHED", "count": 2}
	require.NoError(t, f.Format(&buf, input))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "MATCHED", got["outcome"])
	assert.Equal(t, float64(2), got["count"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}

	input := struct {
		Key     string `yaml:"join_key"`
		Outcome string `yaml:"outcome"`
	}{Key: "alpha product", Outcome: "MATCHED"}
	require.NoError(t, f.Format(&buf, input))

	got := buf.String()
	assert.Contains(t, got, "join_key: alpha product")
	assert.Contains(t, got, "outcome: MATCHED")
}

func TestTableFormatterData(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	data := Data{
		Headers: []string{"Join Key", "Outcome"},
		Rows: [][]string{
			{"alpha product", "MATCHED"},
			{"beta service", "TICKET_ONLY"},
		},
	}
	require.NoError(t, f.Format(&buf, data))

	got := buf.String()
	assert.Contains(t, got, "alpha product")
	assert.Contains(t, got, "TICKET_ONLY")
	assert.Contains(t, strings.ToUpper(got), "JOIN KEY")
}

func TestTableFormatterStructSlice(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	input := []struct {
		TicketID string `json:"ticket_id"`
		Status   string `json:"status"`
	}{
		{TicketID: "JIRA-102", Status: "Development"},
	}
	require.NoError(t, f.Format(&buf, input))

	got := buf.String()
	assert.Contains(t, got, "JIRA-102")
	assert.Contains(t, got, "Development")
	assert.Contains(t, strings.ToUpper(got), "TICKET ID")
}

func TestTableFormatterSingleStruct(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	input := struct {
		Name   string `json:"name"`
		Volume int64  `json:"volume"`
	}{Name: "unmapped widget", Volume: 870}
	require.NoError(t, f.Format(&buf, input))

	got := buf.String()
	assert.Contains(t, got, "unmapped widget")
	assert.Contains(t, got, "870")
	assert.Contains(t, strings.ToUpper(got), "PROPERTY")
}

func TestTableFormatterFallbackJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	// Maps have no table conversion and fall back to JSON.
	input := map[string]int{"matched": 2}
	require.NoError(t, f.Format(&buf, input))

	var got map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got["matched"])
}

func TestTitles(t *testing.T) {
	got := Titles([]string{"join_key", "associated_volume", "outcome"})
	assert.Equal(t, []string{"Join Key", "Associated Volume", "Outcome"}, got)
}
