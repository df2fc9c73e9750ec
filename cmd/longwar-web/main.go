package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"longwar/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	decksFile := flag.String("decks", "decks.yaml", "path to deck library YAML")
	flag.Parse()

	srv := web.NewServer(*decksFile)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("longwar web UI listening on http://localhost%s", addr)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
