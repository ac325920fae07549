package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []uint
		wantErr bool
	}{
		{name: "single", input: "1", want: []uint{1}},
		{name: "multiple", input: "1,5", want: []uint{1, 5}},
		{name: "spaces", input: "1, 5", want: []uint{1, 5}},
		{name: "blank", input: "", wantErr: true},
		{name: "word", input: "fred", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "trailing comma", input: "1,", wantErr: true},
		{name: "float", input: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDList(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = ParseID("-1")
	assert.Error(t, err)
	_, err = ParseID("abc")
	assert.Error(t, err)
}
