// Command twofa prints TOTP codes for a secret kept in the macOS keychain,
// pass, or the environment.
//
//	twofa -a alice -s github -n 2
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
