package main

import (
	"brandlink_backend/internal/app"
	"brandlink_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err.Error())
	}
}
