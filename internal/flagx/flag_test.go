package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "equals form",
			args:         []string{"--config=alt.json", "-a", "http://localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-t", "5"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-a", "http://api", "-r", "10", "-d", "x.db"},
			allowedFlags: []string{"-a", "-d"},
			want:         []string{"-a", "http://api", "-d", "x.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short flag", func(t *testing.T) {
		assert.Equal(t, "/etc/short.json", ConfigPath([]string{"-c", "/etc/short.json"}, ""))
	})

	t.Run("long flag, last wins", func(t *testing.T) {
		args := []string{"-c", "/one.json", "-config", "/two.json"}
		assert.Equal(t, "/two.json", ConfigPath(args, ""))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("EXAMINER_CONFIG", "/env.json")
		assert.Equal(t, "/env.json", ConfigPath([]string{"-a", "x"}, "EXAMINER_CONFIG"))
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("EXAMINER_CONFIG", "/env.json")
		assert.Equal(t, "/flag.json", ConfigPath([]string{"-c", "/flag.json"}, "EXAMINER_CONFIG"))
	})

	t.Run("nothing set", func(t *testing.T) {
		assert.Empty(t, ConfigPath(nil, ""))
	})
}
