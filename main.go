package main

import (
	"github.com/AnnaHort/phonebook-auth/config"
	"github.com/AnnaHort/phonebook-auth/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
