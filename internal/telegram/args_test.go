package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStartArgs(t *testing.T) {
	defaultGroup := "english_b2"
	defaultInterval := 120 * time.Minute

	cases := []struct {
		name         string
		args         []string
		wantGroup    string
		wantInterval time.Duration
	}{
		{"no args", nil, "english_b2", 120 * time.Minute},
		{"interval only", []string{"30"}, "english_b2", 30 * time.Minute},
		{"group only", []string{"spanish"}, "spanish", 120 * time.Minute},
		{"group and interval", []string{"spanish", "15"}, "spanish", 15 * time.Minute},
		{"group case folded", []string{"Spanish "}, "spanish", 120 * time.Minute},
		{"junk second arg", []string{"spanish", "soon"}, "spanish", 120 * time.Minute},
		{"zero interval ignored", []string{"0"}, "english_b2", 120 * time.Minute},
		{"negative interval ignored", []string{"-5"}, "english_b2", 120 * time.Minute},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			group, interval := parseStartArgs(tc.args, defaultGroup, defaultInterval)
			assert.Equal(t, tc.wantGroup, group)
			assert.Equal(t, tc.wantInterval, interval)
		})
	}
}

func TestIsCommand(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"/help", true},
		{"/start english_b2", true},
		{"  /stop", true},
		{"reluctant", false},
		{"half/half", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, isCommand(tc.text), "text %q", tc.text)
	}
}
