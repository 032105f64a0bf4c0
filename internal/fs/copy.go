package fs

import "os"

// CopyFile copies src to dst byte for byte, replacing dst if it exists.
// The destination keeps perm; the source mode is not carried over.
func CopyFile(fsys FS, src, dst string, perm os.FileMode) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return WriteFileAtomic(fsys, dst, data, perm)
}
