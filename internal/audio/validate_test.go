package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "latin word",
			text: "apple",
		},
		{
			name: "traditional chinese",
			text: "蘋果",
		},
		{
			name: "thai phrase",
			text: "สวัสดีครับ",
		},
		{
			name:    "empty string",
			text:    "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			text:    " \t\n",
			wantErr: true,
		},
		{
			name: "exactly at limit",
			text: strings.Repeat("字", MaxTextLength),
		},
		{
			name:    "over limit",
			text:    strings.Repeat("a", MaxTextLength+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
