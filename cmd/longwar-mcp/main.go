package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	longwarmcp "longwar/internal/mcp"
)

func main() {
	out := flag.String("out", "high_score.txt", "high-score log used by run_search")
	flag.Parse()

	longwarmcp.SetLogPath(*out)

	s := server.NewMCPServer("longwar", "1.0.0")
	longwarmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
