package core

import (
	"io/fs"
	"path/filepath"
)

// SecondaryImageExt is the extension of the flashable image written next to
// each executable.
const SecondaryImageExt = ".s37"

// IsConvertible reports whether a directory entry is an executable that
// should get a secondary image: a regular, extensionless file that is
// executable on goos. Windows has no execute bit, so any such file counts.
func IsConvertible(name string, mode fs.FileMode, goos string) bool {
	if !mode.IsRegular() {
		return false
	}
	if filepath.Ext(name) != "" {
		return false
	}
	if goos == "windows" {
		return true
	}
	return mode.Perm()&0o111 != 0
}

// SecondaryImagePath is the image path for an executable.
func SecondaryImagePath(executable string) string {
	return executable + SecondaryImageExt
}
