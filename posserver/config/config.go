package config

import (
	"os"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Addr       string
	TerminalID string
}

var AppConfig ServerConfig

// Load reads the optional .env file and the POS_* variables. Missing
// values fall back to development defaults.
func Load() error {
	_ = godotenv.Load("posserver/.env")
	addr := os.Getenv("POS_SERVER_ADDR")
	if addr == "" {
		addr = ":8082"
	}
	terminal := os.Getenv("POS_TERMINAL_ID")
	if terminal == "" {
		terminal = "T01"
	}
	AppConfig = ServerConfig{Addr: addr, TerminalID: terminal}
	return nil
}
