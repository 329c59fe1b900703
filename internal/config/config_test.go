package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntbapp/ntb-server/internal/domain"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{Dir: "/data/lahman"},
		Game: GameConfig{
			Mode: "batting", MinYears: 5, MinPA: 1500, MinIP: 1000,
			CategoryPolicy: "stronger", OutputDir: "/tmp/output",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_RequiresDataDir(t *testing.T) {
	cfg := validConfig()
	cfg.Data.Dir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}

func TestValidate_FilterSurface(t *testing.T) {
	t.Run("bad mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Game.Mode = "fielding"
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero min years", func(t *testing.T) {
		cfg := validConfig()
		cfg.Game.MinYears = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad category policy", func(t *testing.T) {
		cfg := validConfig()
		cfg.Game.CategoryPolicy = "coinflip"
		assert.Error(t, cfg.Validate())
	})
}

func TestFilter(t *testing.T) {
	cfg := validConfig()
	cfg.Game.EraStart, cfg.Game.EraEnd = 1950, 2000

	f := cfg.Filter()
	assert.Equal(t, domain.ModeBatting, f.Mode)
	assert.Equal(t, 5, f.MinYears)
	assert.Equal(t, 1500, f.MinPA)
	assert.Equal(t, 1000, f.MinIP)
	assert.Equal(t, 1950, f.Era.Start)
	assert.Equal(t, 2000, f.Era.End)
}

func TestParseEra(t *testing.T) {
	tests := []struct {
		in          string
		start, end  int
		expectError bool
	}{
		{"", 0, 0, false},
		{"1950-2000", 1950, 2000, false},
		{"1950", 0, 0, true},
		{"2000-1950", 0, 0, true},
		{"abc-def", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, err := parseEra(tt.in)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("NTB_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "NTB_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "NTB_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "NTB_TEST_MISSING", "default"))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("NTB_TEST_INT", "42")
	assert.Equal(t, 42, getIntConfigValue("", "NTB_TEST_INT", 7))
	assert.Equal(t, 7, getIntConfigValue("", "NTB_TEST_INT_MISSING", 7))

	t.Setenv("NTB_TEST_INT_BAD", "not-a-number")
	assert.Equal(t, 7, getIntConfigValue("", "NTB_TEST_INT_BAD", 7))
}

func TestGetFloatConfigValue(t *testing.T) {
	t.Setenv("NTB_TEST_FLOAT", "2.5")
	assert.InDelta(t, 2.5, getFloatConfigValue("", "NTB_TEST_FLOAT", 1), 1e-9)
	assert.InDelta(t, 1.0, getFloatConfigValue("", "NTB_TEST_FLOAT_MISSING", 1), 1e-9)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nNTB_ENVFILE_A=hello\nNTB_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("NTB_ENVFILE_A")
		os.Unsetenv("NTB_ENVFILE_B")
	})

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("NTB_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("NTB_ENVFILE_B"))
}

func TestLoadEnvFile_DoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NTB_ENVFILE_C=from-file\n"), 0o644))

	t.Setenv("NTB_ENVFILE_C", "preset")
	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "preset", os.Getenv("NTB_ENVFILE_C"))
}

func TestExpandPath(t *testing.T) {
	abs, err := expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	got, err := expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", got)

	got, err = expandPath("", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
