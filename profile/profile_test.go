package profile_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/pyvalrepr/profile"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()

	assert.Empty(t, cfg.CPUProfile)
	assert.Empty(t, cfg.HeapProfile)
	assert.Empty(t, cfg.AllocsProfile)
	assert.Empty(t, cfg.GoroutineProfile)
	assert.Zero(t, cfg.MemProfileRate)
}

func TestConfigRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--cpu-profile=cpu.prof",
		"--heap-profile=heap.prof",
		"--allocs-profile=allocs.prof",
		"--goroutine-profile=goroutine.prof",
		"--mem-profile-rate=1024",
	})
	require.NoError(t, err)

	assert.Equal(t, "cpu.prof", cfg.CPUProfile)
	assert.Equal(t, "heap.prof", cfg.HeapProfile)
	assert.Equal(t, "allocs.prof", cfg.AllocsProfile)
	assert.Equal(t, "goroutine.prof", cfg.GoroutineProfile)
	assert.Equal(t, 1024, cfg.MemProfileRate)
}

func TestConfigCustomFlagNames(t *testing.T) {
	t.Parallel()

	cfg := profile.Flags{
		CPUProfile:       "cpu",
		HeapProfile:      "heap",
		AllocsProfile:    "allocs",
		GoroutineProfile: "goroutines",
		MemProfileRate:   "rate",
	}.NewConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{"--goroutines=g.prof"}))
	assert.Equal(t, "g.prof", cfg.GoroutineProfile)
	assert.Nil(t, flags.Lookup("goroutine-profile"))
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := profile.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	completionFn, ok := cmd.GetFlagCompletionFunc("mem-profile-rate")
	require.True(t, ok)

	values, directive := completionFn(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Empty(t, values)

	completionFn, ok = cmd.GetFlagCompletionFunc("cpu-profile")
	require.True(t, ok)

	values, directive = completionFn(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)
	assert.Equal(t, []string{"prof"}, values)
}

func TestProfilerSnapshots(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		cfg       profile.Config
		wantFiles []string
	}{
		"disabled": {},
		"goroutine": {
			cfg:       profile.Config{GoroutineProfile: "g.prof"},
			wantFiles: []string{"g.prof"},
		},
		"heap and allocs": {
			cfg:       profile.Config{HeapProfile: "heap.prof", AllocsProfile: "allocs.prof"},
			wantFiles: []string{"heap.prof", "allocs.prof"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			p := tc.cfg.NewProfiler(fs)

			require.NoError(t, p.Start())
			require.NoError(t, p.Stop())

			for _, path := range tc.wantFiles {
				data, err := afero.ReadFile(fs, path)
				require.NoError(t, err)
				assert.NotEmpty(t, data, path)
			}
		})
	}
}

func TestProfilerWriteFailure(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	cfg := profile.Config{GoroutineProfile: "g.prof", HeapProfile: "heap.prof"}

	p := cfg.NewProfiler(fs)
	require.NoError(t, p.Start())

	err := p.Stop()
	require.ErrorIs(t, err, profile.ErrProfile)
	assert.Contains(t, err.Error(), "heap")
	assert.Contains(t, err.Error(), "goroutine")
}

//nolint:paralleltest // Only one CPU profile can run per process.
func TestProfilerCPU(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := profile.Config{CPUProfile: "cpu.prof"}

	p := cfg.NewProfiler(fs)
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())

	exists, err := afero.Exists(fs, "cpu.prof")
	require.NoError(t, err)
	assert.True(t, exists)
}
