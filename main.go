package main

import (
	"flag"
	"fmt"
	"os"

	"todo-service/server"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run modules")
	flag.Parse()

	if *commandFlag == "" {
		fmt.Println("Usage: go run main.go --command <command-name>")
		os.Exit(1)
	}

	switch *commandFlag {
	case "start":
		server.StartServer()
	}
}
