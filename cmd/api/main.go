package main

import (
	"fmt"
	"net/http"

	"github.com/wellmind-hq/wellness-backend-go/internal/config"
	appHTTP "github.com/wellmind-hq/wellness-backend-go/internal/handler/http"
	"github.com/wellmind-hq/wellness-backend-go/internal/pkg/database"
	"github.com/wellmind-hq/wellness-backend-go/internal/pkg/jwt"
	"github.com/wellmind-hq/wellness-backend-go/internal/repository/postgresql"
	directoryService "github.com/wellmind-hq/wellness-backend-go/internal/service/directory"
	hierarchyService "github.com/wellmind-hq/wellness-backend-go/internal/service/hierarchy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	directoryRepo := postgresql.NewDirectoryRepository(db.Pool)
	reportRepo := postgresql.NewReportRepository(db.Pool, cfg.Hierarchy.ReportBatchSize)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hierarchySvc := hierarchyService.NewHierarchyService(directoryRepo, reportRepo, hierarchyService.Options{
		MaxDepth:         cfg.Hierarchy.MaxDepth,
		RecentWindowDays: cfg.Hierarchy.RecentWindowDays,
	})
	directorySvc := directoryService.NewDirectoryService(directoryRepo)

	hierarchyHandler := appHTTP.NewHierarchyHandler(hierarchySvc)
	directoryHandler := appHTTP.NewDirectoryHandler(directorySvc)

	router := appHTTP.NewRouter(JWTService, hierarchyHandler, directoryHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
