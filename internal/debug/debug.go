package debug

import (
	"fmt"
	"log"
	"time"

	"gopkg.in/yaml.v3"
)

// Output prints a trace line if debugging is enabled.
func Output(enabled bool, format string, args ...interface{}) {
	if enabled {
		timestamp := time.Now().Format("15:04:05.000")
		message := fmt.Sprintf(format, args...)
		log.Printf("[%s] %s", timestamp, message)
	}
}

// Dump prints v as YAML if debugging is enabled. Used to dump the final
// parse state for inspection.
func Dump(enabled bool, v interface{}) {
	if !enabled {
		return
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		log.Printf("dump failed: %v", err)
		return
	}
	fmt.Print(string(out))
}

// Timing measures and logs execution time if debugging is enabled.
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		log.Printf("%s took %v", operation, time.Since(start))
	}
}
