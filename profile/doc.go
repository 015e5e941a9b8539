// Package profile adds runtime profiling to the pyvalrepr command.
//
// It supports CPU, heap, allocs and goroutine profiles through command-line
// flags. Profiles are written through an [afero.Fs], so tests can capture
// them in memory.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler(afero.NewOsFs())
//	err := p.Start()
//	// ... render ...
//	err = p.Stop()
//
// Users then enable profiling with flags like --cpu-profile=cpu.prof.
package profile
