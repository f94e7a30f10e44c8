package main

import "github.com/cutoutshort/cutout/internal/cli"

func main() {
	cli.Main()
}
