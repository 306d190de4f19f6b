package main

import (
	"github.com/haguru/torii/config"
	"github.com/haguru/torii/internal/app"
)

func main() {

	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH)
	if err != nil {
		panic(err) // handle error appropriately in production code
	}

	// run the app
	// This will start the server and serve the routes defined in the app
	// package until the listener fails or the process is stopped.
	err = app.Run()
	if err != nil {
		panic(err) // handle error appropriately in production code
	}
}
