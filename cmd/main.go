package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/jakia12/bizconnect-backend/config"
	"github.com/jakia12/bizconnect-backend/controllers"
	"github.com/jakia12/bizconnect-backend/database"
	"github.com/jakia12/bizconnect-backend/events"
	"github.com/jakia12/bizconnect-backend/routes"
)

func main() {

	config.LoadEnv()
	cfg := config.Load()

	database.ConnectMongo()
	database.InitCollections()

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		log.Fatalf("RabbitMQ initialization failed: %v", err)
	}
	defer publisher.Close()
	controllers.SetPublisher(publisher)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r)

	port := config.GetEnv("PORT", "8080")
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
