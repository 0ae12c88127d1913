//go:build linux

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential is best-effort; failures only cost read-ahead.
func adviseSequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
