// Command aimockctl is a developer tool for the AI mock interview API. It
// runs the response normalizer over captured model output, generates
// questions against the configured model, applies migrations and signs
// local bearer tokens.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
