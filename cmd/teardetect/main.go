package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ThatOtherAndrew/teardetect/cmd"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "teardetect:", err)
		os.Exit(cmd.ExitCode(err))
	}
}
