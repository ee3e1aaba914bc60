//go:build !unix

package main

import (
	"os"

	"golang.org/x/term"
)

func terminalSize(f *os.File) (width, height int, err error) {
	return term.GetSize(int(f.Fd()))
}
