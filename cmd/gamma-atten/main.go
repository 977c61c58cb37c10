package main

import (
	"github.com/gilliss/gamma-atten/cmd/gamma-atten/cmd"
)

func main() {
	cmd.Execute()
}
