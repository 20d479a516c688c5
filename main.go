package main

import "github.com/imperador1k/dieta/cmd/dieta"

func main() {
	dieta.Execute()
}
