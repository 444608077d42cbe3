package main

import (
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // date keys need the reference timezone everywhere

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/routes"
	"github.com/Tobix2/Calorika-sub000/services"
	"github.com/Tobix2/Calorika-sub000/utils"
)

func main() {
	config.InitDB()

	hub := services.NewChatHub()
	services.InitNotifier(config.DB, hub)
	services.InitAutosave(services.NewPlanStore(), services.DefaultQuietInterval)

	// Pending debounced writes must land before the process exits.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		utils.Log.Info("shutting down, flushing pending plan writes")
		services.Saver.Flush()
		services.Saver.Stop()
		os.Exit(0)
	}()

	r := routes.SetupRouter(hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.Log.Infof("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.Log.Fatalf("server stopped: %v", err)
	}
}
