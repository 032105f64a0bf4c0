package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var summaries = []ProjectSummary{
	{Period: 2023, Day: 1, Binary: "day-1-2023", Dir: "2023/day-1", Status: "untouched"},
	{Period: 2023, Day: 12, Binary: "day-12-2023", Dir: "2023/day-12", Status: "in progress"},
}

func TestWriteLSHuman(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLSHuman(&buf, FormatHumanRows(summaries)))

	want := "PROJECT  BINARY       STATUS       DIR\n" +
		"2023/1   day-1-2023   untouched    2023/day-1\n" +
		"2023/12  day-12-2023  in progress  2023/day-12\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteLSHuman_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLSHuman(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteLSJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLSJSON(&buf, summaries))

	var got LSJSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1.0", got.SchemaVersion)
	if diff := cmp.Diff(summaries, got.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteLSJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLSJSON(&buf, nil))
	assert.Contains(t, buf.String(), `"data": []`)
}
