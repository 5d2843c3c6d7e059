package main

import (
	"os"

	"github.com/nextiwant/wishlist-backend/cmd/server/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
