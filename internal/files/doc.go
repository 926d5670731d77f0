// Package files provides file system operations and discovery utilities
// for cbxreport.
//
// This package contains two main components:
//
// Discovery: finds take-off archives in an input folder by extension,
// sorted by file name so runs are reproducible.
//
// Manager: owns scratch workspaces used while an archive member is
// extracted.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	archives, err := discovery.FindArchives("jobs", ".CBX", false)
//
//	manager := files.NewManager(logger)
//	dir, cleanup, err := manager.TempWorkspace("cbx-*")
//	defer cleanup()
package files
