package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment variables passed to extensions, carrying the global flags.
const (
	EnvConfig    = "FINTRACK_CONFIG"
	EnvStore     = "FINTRACK_STORE"
	EnvStorePath = "FINTRACK_STORE_PATH"
	EnvCurrency  = "FINTRACK_CURRENCY"
	EnvLogLevel  = "FINTRACK_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external fin-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "fin-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// Global flags override the environment, as they do for built-in commands.
	cmd.Env = os.Environ()
	for env, value := range map[string]string{
		EnvConfig:    *configPath,
		EnvStore:     *storeKind,
		EnvStorePath: *storePath,
		EnvCurrency:  *currency,
		EnvLogLevel:  *logLevel,
	} {
		if value != "" {
			cmd.Env = append(cmd.Env, env+"="+value)
		}
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
