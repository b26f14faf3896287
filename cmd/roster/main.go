package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/celerix-dev/celerix-roster/pkg/schema"
	"github.com/celerix-dev/celerix-roster/pkg/sdk"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	addr := os.Getenv(sdk.AddrEnv)
	if addr == "" {
		addr = "localhost:3000"
	}

	client, err := sdk.Connect(addr)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", addr, err)
	}

	command := strings.ToUpper(os.Args[1])
	args := os.Args[2:]

	switch command {
	case "USERS":
		users, err := client.ListUsers()
		if err != nil {
			log.Fatal(err)
		}
		printJSON(users)

	case "ADD":
		if len(args) < 3 {
			log.Fatal("Usage: roster ADD <id> <name> <role>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalf("Invalid id %q: %v", args[0], err)
		}
		user, err := client.AddUser(schema.User{ID: id, Name: args[1], Role: args[2]})
		if err != nil {
			log.Fatal(err)
		}
		printJSON(user)

	case "STATUS":
		status, err := client.GetStatus()
		if err != nil {
			log.Fatal(err)
		}
		printJSON(status)

	case "PING":
		// Connect already probed GET /status
		fmt.Println("PONG")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Roster CLI - Interface for roster-stored")
	fmt.Println("\nUsage:")
	fmt.Println("  roster USERS")
	fmt.Println("  roster ADD <id> <name> <role>    (id 0 lets the daemon assign one)")
	fmt.Println("  roster STATUS")
	fmt.Println("  roster PING")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  ROSTER_ADDR    Address of the daemon (default: localhost:3000)")
}

func printJSON(v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(bytes))
}
