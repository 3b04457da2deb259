package main

import (
	"log"

	"github.com/zintix-labs/floatrand/sdk/perf"
)

// makefile runner
func main() {
	bindVar()
	if err := perf.Run(executeSimulator, cfg.pprofmode, perf.DefaultDir); err != nil {
		log.Fatal(err)
	}
}
