package main

import "github.com/angel343234/Isa-Crochet-shop-platform/cmd"

func main() {
	cmd.Start()
}
