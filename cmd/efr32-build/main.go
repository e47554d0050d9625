package main

import "efr32-build/internal/cli"

func main() {
	cli.Execute()
}
