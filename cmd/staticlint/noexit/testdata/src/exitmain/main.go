package main

import (
	"fmt"
	"os"
	osalias "os"
)

func main() {
	fmt.Println("starting")
	os.Exit(1)      // want "прямой вызов os.Exit в функции main запрещен"
	osalias.Exit(2) // want "прямой вызов os.Exit в функции main запрещен"

	defer func() {
		os.Exit(3) // want "прямой вызов os.Exit в функции main запрещен"
	}()
}

func shutdown() {
	os.Exit(0)
}

type server struct{}

func (server) main() {
	os.Exit(0)
}
