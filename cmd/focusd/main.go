package main

import (
	"log"

	"github.com/focusengine/dietitian-focus/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
