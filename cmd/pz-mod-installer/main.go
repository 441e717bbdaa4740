package main

import "pz-mod-installer/internal/cli"

func main() {
	cli.Execute()
}
