// @title           VLINKY API
// @version         1.0
// @description     Personalized video request marketplace API.
// @host            localhost:4000
// @BasePath        /

package main

import (
	"vlinky_backend/internal/app"
	"vlinky_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err.Error())
	}
}
