// queueopt analyzes and optimizes closed queueing network configurations.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
