package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vmunix/mediasync/internal/config"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mediasyncd %s\n", version)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		path = discovered
	}

	if err := runServer(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
