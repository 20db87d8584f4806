//go:build !windows

package logger

import "syscall"

func getpgrp() int {
	return syscall.Getpgrp()
}
