package main

import "github.com/BertoldVdb/go-pigpio/cmd/pigpio/cmd"

func main() {
	cmd.Execute()
}
