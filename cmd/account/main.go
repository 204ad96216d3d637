package main

import (
	"github.com/purepath/account-service/config"
	"github.com/purepath/account-service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
