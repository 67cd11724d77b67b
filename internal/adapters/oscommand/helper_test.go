package oscommand_test

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

// Environment variables that turn the test binary into a stand-in child.
const (
	envHelper = "PGDOCK_TEST_HELPER"
	envExit   = "PGDOCK_TEST_HELPER_EXIT"
)

// TestMain lets the test binary double as the spawned program, so real
// processes can be started without depending on docker.
func TestMain(m *testing.M) {
	if mode := os.Getenv(envHelper); mode != "" {
		os.Exit(runHelper(mode, os.Args[1:]))
	}
	os.Exit(m.Run())
}

func runHelper(mode string, args []string) int {
	switch mode {
	case "exit":
		code, _ := strconv.Atoi(os.Getenv(envExit))
		return code
	case "args":
		fmt.Fprintln(os.Stdout, strings.Join(args, " "))
		return 0
	case "cat":
		if _, err := io.Copy(os.Stdout, os.Stdin); err != nil {
			return 1
		}
		fmt.Fprintln(os.Stderr, "done")
		return 0
	case "block":
		// Runs until a signal arrives; the default action terminates us.
		fmt.Fprintln(os.Stdout, "ready")
		time.Sleep(time.Minute)
		return 0
	}
	return 2
}

// helperEnv switches the current test into helper mode for spawned children.
func helperEnv(t *testing.T, mode string, exit int) {
	t.Helper()
	t.Setenv(envHelper, mode)
	t.Setenv(envExit, strconv.Itoa(exit))
}
