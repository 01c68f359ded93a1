package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriplabs/scrip/internal/config"
	"github.com/scriplabs/scrip/internal/output"
	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// errTestRandom is used for testing non-scrip error handling.
var errTestRandom = scriperr.New("TEST_ERROR", "some random error")

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error returns success",
			err:  nil,
			want: scriperr.ExitSuccess,
		},
		{
			name: "general error",
			err:  scriperr.ErrGeneral,
			want: scriperr.ExitGeneral,
		},
		{
			name: "invalid input error",
			err:  scriperr.ErrInvalidInput,
			want: scriperr.ExitInput,
		},
		{
			name: "insufficient balance error",
			err:  scriperr.ErrInsufficientBalance,
			want: scriperr.ExitPermission,
		},
		{
			name: "wallet not found error",
			err:  scriperr.ErrWalletNotFound,
			want: scriperr.ExitNotFound,
		},
		{
			name: "wallet exists error",
			err:  scriperr.ErrWalletExists,
			want: scriperr.ExitInput,
		},
		{
			name: "invalid mnemonic error",
			err:  scriperr.ErrInvalidMnemonic,
			want: scriperr.ExitInput,
		},
		{
			name: "decryption failed error",
			err:  scriperr.ErrDecryptionFailed,
			want: scriperr.ExitAuth,
		},
		{
			name: "malformed balance identifier",
			err:  scriperr.ErrInvalidBalanceID,
			want: scriperr.ExitInput,
		},
		{
			name: "submit failure",
			err:  scriperr.ErrSubmitFailed,
			want: scriperr.ExitGeneral,
		},
		{
			name: "non-scrip error returns general",
			err:  errTestRandom,
			want: scriperr.ExitGeneral,
		},
		{
			name: "wrapped scrip error preserves exit code",
			err:  scriperr.Wrap(scriperr.ErrDecryptionFailed, "failed to unlock wallet"),
			want: scriperr.ExitAuth,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExitCode(tc.err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestGlobalGetters tests Config(), Logger(), Formatter() getters.
// NOT parallel: mutates package-level globals.
func TestGlobalGetters(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	testCfg := config.Defaults()
	testLogger := config.NullLogger()
	testFmt := output.NewFormatter(output.FormatText, nil)

	cfg = testCfg
	logger = testLogger
	formatter = testFmt

	assert.Equal(t, testCfg, Config())
	assert.Equal(t, testLogger, Logger())
	assert.Equal(t, testFmt, Formatter())
}

// TestCleanup_NilLogger verifies cleanup doesn't panic with nil logger.
func TestCleanup_NilLogger(t *testing.T) {
	origLogger := logger
	defer func() { logger = origLogger }()

	logger = nil
	assert.NotPanics(t, func() { cleanup() })
}

// TestCleanup_WithLogger verifies cleanup doesn't panic with a valid logger.
func TestCleanup_WithLogger(t *testing.T) {
	origLogger := logger
	defer func() { logger = origLogger }()

	logger = config.NullLogger()
	assert.NotPanics(t, func() { cleanup() })
}

// --- Tests for initGlobals ---

// saveGlobals saves all package-level globals and returns a restore function.
func saveGlobals(t *testing.T) func() {
	t.Helper()
	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origHomeDir := homeDir
	origOutputFormat := outputFormat
	origVerbose := verbose
	return func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		homeDir = origHomeDir
		outputFormat = origOutputFormat
		verbose = origVerbose
	}
}

func TestInitGlobals_DefaultConfig(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir := t.TempDir()

	// No config file in the temp home; defaults should apply.
	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	err := initGlobals()
	require.NoError(t, err)

	require.NotNil(t, cfg, "cfg should be set")
	require.NotNil(t, logger, "logger should be set")
	require.NotNil(t, formatter, "formatter should be set")

	assert.Equal(t, tmpDir, cfg.Home)
}

func TestInitGlobals_VerboseFlag(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	homeDir = t.TempDir()
	outputFormat = ""
	verbose = true

	err := initGlobals()
	require.NoError(t, err)

	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestInitGlobals_OutputFormatFlag(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	homeDir = t.TempDir()
	outputFormat = "json"
	verbose = false

	err := initGlobals()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
}

func TestInitGlobals_WithExistingConfig(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir := t.TempDir()

	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	testCfg.Logging.Level = "debug"
	require.NoError(t, config.Save(testCfg, config.Path(tmpDir)))

	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	err := initGlobals()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestInitGlobals_EnvHome(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir := t.TempDir()

	// Use env var instead of flag
	homeDir = ""
	outputFormat = ""
	verbose = false
	t.Setenv(config.EnvHome, tmpDir)

	err := initGlobals()
	require.NoError(t, err)

	assert.Equal(t, tmpDir, cfg.Home)
}
