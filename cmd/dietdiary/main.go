// Command dietdiary is the diet diary client. It talks to the diary
// backend REST API, keeps the login session and a day-record mirror in a
// local SQLite file, and drives the voice capture pipeline that turns a
// spoken meal description into persisted records.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
