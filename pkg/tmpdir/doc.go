// Package tmpdir provides uniquely-named temporary directories that remove
// themselves, and everything inside them, when their owning handle is done.
//
// A handle owns exactly one directory. The directory is created by the
// constructor with a collision-resistant random name, so two callers (or two
// processes) racing on the same base and prefix can never end up sharing a
// path: uniqueness is enforced by the OS "create directory, fail if exists"
// primitive, not by in-process coordination.
//
// # Lifecycle Discipline
//
// Go has no destructors, so end-of-scope cleanup is expressed with defer.
// The expected pattern is:
//
//	d, err := tmpdir.New("job")
//	if err != nil {
//	    return err
//	}
//	defer d.Cleanup()
//	// ... use d.Path() ...
//
// Cleanup is best-effort: a teardown failure is logged, not returned, because
// at defer time there is nobody left to return it to. Callers that need
// guaranteed error visibility call Close explicitly instead:
//
//	if err := d.Close(); err != nil {
//	    return err
//	}
//
// For block-scoped use, With runs a function against a directory that is
// always cleaned up on the way out, including on panic:
//
//	err := tmpdir.With("unpack", func(path string) error {
//	    return extract(archive, path)
//	})
//
// # Keeping the Directory
//
// Release disables automatic deletion and hands the path to the caller, who
// then owns it:
//
//	path := d.Release() // d will never delete anything again
//
// # Concurrency
//
// A handle is single-owner: it may be handed from one goroutine to another,
// but two goroutines must not call its methods concurrently. Separate handles
// are fully independent.
package tmpdir
