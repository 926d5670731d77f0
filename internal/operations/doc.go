// Package operations runs a batch export over a folder of CBX archives.
//
// Runner discovers the archives in name order, loads each one through an
// ArchiveLoader, flattens and unpivots it with a dataprocessing.Processor and
// accumulates the rows, stamped with their source file, into a Batch. Each
// archive gets a FileResult; failures are isolated to their file unless the
// runner is configured to fail fast.
//
// Example usage:
//
//	runner := operations.NewRunner(loader, dataprocessing.NewTakeoffProcessor(opts),
//		operations.RunnerOptions{Extension: ".CBX", Progress: os.Stdout}, logger)
//	batch, err := runner.Run(ctx, "./takeoffs")
package operations
