package pluginhost

import (
	"runtime"
	"testing"
)

func TestLibraryFilename_NonDarwinUsesSOExtension(t *testing.T) {
	// This test only exercises the naming convention; actually opening a
	// shared library requires a real build artifact produced with
	// -buildmode=plugin, which is exercised by the end-to-end scenarios in
	// SPEC_FULL.md §8 rather than unit tests here.
	want := "libsample01.so"
	if runtime.GOOS == "darwin" {
		want = "libsample01.dylib"
	}
	if got := libraryFilename("sample01"); got != want {
		t.Fatalf("unexpected library filename: %s", got)
	}
}
