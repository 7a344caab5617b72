package main

import (
	"log"
	"os"
	"path/filepath"

	"society-intake-api/config"
	"society-intake-api/middleware"
	"society-intake-api/routes"
	"society-intake-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	config.InitDB()
	config.InitRedis()

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(config.LogWriter))
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(router)

	// Per-purpose upload directories
	for _, folder := range []string{
		utils.FolderPhotos,
		utils.FolderSignatures,
		utils.FolderNIDImages,
		utils.FolderDocuments,
		utils.FolderPDFs,
	} {
		if err := os.MkdirAll(filepath.Join(utils.UploadRoot(), folder), os.ModePerm); err != nil {
			log.Printf("Warning: Failed to create upload directory %s: %v", folder, err)
		}
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
