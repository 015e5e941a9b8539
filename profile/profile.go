package profile

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// ErrProfile indicates a profile that could not be started or written.
var ErrProfile = errors.New("profile")

// Profiler controls the lifecycle of one profiling session.
//
// Call [Profiler.Start] to begin profiling and [Profiler.Stop] to write all
// enabled profiles.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	fs      afero.Fs
	cpuFile afero.File
	Config
}

// Start applies the memory profile rate and starts CPU profiling if enabled.
func (p *Profiler) Start() error {
	if p.MemProfileRate > 0 && (p.HeapProfile != "" || p.AllocsProfile != "") {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.CPUProfile == "" {
		return nil
	}

	f, err := p.fs.Create(p.CPUProfile)
	if err != nil {
		return fmt.Errorf("%w: create cpu profile: %w", ErrProfile, err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return multierr.Append(
			fmt.Errorf("%w: start cpu profile: %w", ErrProfile, err),
			f.Close(),
		)
	}

	p.cpuFile = f

	return nil
}

// Stop stops CPU profiling and writes every enabled snapshot profile. A
// failing profile does not prevent the others from being written.
func (p *Profiler) Stop() error {
	var errs error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: close cpu profile: %w", ErrProfile, err))
		}

		p.cpuFile = nil
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.HeapProfile},
		{"allocs", p.AllocsProfile},
		{"goroutine", p.GoroutineProfile},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		errs = multierr.Append(errs, p.writeProfile(s.name, s.path))
	}

	return errs
}

func (p *Profiler) writeProfile(name, path string) (err error) {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("%w: unknown profile %q", ErrProfile, name)
	}

	if name == "heap" || name == "allocs" {
		runtime.GC()
	}

	f, err := p.fs.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s profile: %w", ErrProfile, name, err)
	}

	defer multierr.AppendInvoke(&err, multierr.Close(f))

	err = prof.WriteTo(f, 0)
	if err != nil {
		return fmt.Errorf("%w: write %s profile: %w", ErrProfile, name, err)
	}

	return nil
}
