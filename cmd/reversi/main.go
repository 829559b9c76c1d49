package main

import "github.com/reversi-arena/reversigo/internal/cli"

func main() {
	cli.Execute()
}
