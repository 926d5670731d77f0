// Package shared holds code used across the cbxreport packages that belongs
// to no single layer.
//
// The testutil subpackage provides log capture for asserting on slog output
// (LogCapture, NewTestLogger, AssertFileEvent) and builders for take-off documents
// and CBX archives used by package tests:
//
//	dir := t.TempDir()
//	testutil.WriteTakeoffArchive(t, dir, "job.CBX",
//	    testutil.TradeNodeXML("A", "Alpha", "B1", [][2]string{{"Quantity", "3"}}, ""))
package shared
