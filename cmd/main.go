package main

import (
	"os"

	"etbinflation/internal/app"

	"github.com/sirupsen/logrus"
)

// @title ETB inflation API
// @version 1.0
// @description Adjusts historical Ethiopian Birr amounts to today's value using US CPI and ETB/USD rates.
// @BasePath /api
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped")
		os.Exit(1)
	}
}
