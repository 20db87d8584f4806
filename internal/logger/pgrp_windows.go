//go:build windows

package logger

// Windows has no process groups in the POSIX sense; services are detected
// through the environment checks in IsService instead.
func getpgrp() int {
	return -1
}
