package main

import (
	"os"

	"github.com/namsor/namsor-connector/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
