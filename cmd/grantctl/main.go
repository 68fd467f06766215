package main

import "github.com/WanderingWalnut/Grantly/internal/cli"

func main() {
	cli.Execute()
}
