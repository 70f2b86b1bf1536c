package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		text    string
		errMsg  string
		wantErr bool
	}{
		{name: "valid", title: "Hello", text: "First post"},
		{name: "valid - max lengths", title: strings.Repeat("т", 100), text: strings.Repeat("x", 1000)},
		{name: "empty title", title: "", text: "x", wantErr: true, errMsg: "post_title cannot be empty"},
		{name: "blank title", title: "   ", text: "x", wantErr: true, errMsg: "post_title cannot be empty"},
		{name: "long title", title: strings.Repeat("a", 101), text: "x", wantErr: true, errMsg: "post_title must not exceed"},
		{name: "empty text", title: "t", text: "", wantErr: true, errMsg: "post_text cannot be empty"},
		{name: "long text", title: "t", text: strings.Repeat("a", 1001), wantErr: true, errMsg: "post_text must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(tt.title, tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
