package main

import (
	"log"

	"github.com/avc-dev/tag-registry/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
