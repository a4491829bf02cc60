package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"scholar-ai/internal/essay"
	"scholar-ai/internal/input"
	"scholar-ai/internal/profile"
	"scholar-ai/internal/scholarship"
)

// EssayGenerator is the essay engine surface the handlers need.
type EssayGenerator interface {
	Generate(ctx context.Context, combinedInput, userID string) (string, error)
	Update(ctx context.Context, existingEssay, newText string) (string, error)
	UpdateFromDocument(ctx context.Context, existingEssay, documentText string) (string, error)
	Compare(ctx context.Context, essayA, essayB string) (essay.CompareResult, error)
}

// InputFuser merges the request modalities into one combined input.
type InputFuser interface {
	Fuse(ctx context.Context, promptText, audioPath, docPath, docName string) (input.Combined, error)
}

// UserDirectory lists users from the upstream profile service.
type UserDirectory interface {
	FetchAll(ctx context.Context) ([]profile.User, error)
}

// CatalogService persists and serves the scholarship catalog.
type CatalogService interface {
	CachedScrape(ctx context.Context) ([]scholarship.Scholarship, bool)
	StoreScrape(ctx context.Context, results []scholarship.Scholarship) error
	All(ctx context.Context) ([]scholarship.Scholarship, error)
}

// ListingScraper harvests scholarship listings.
type ListingScraper interface {
	ScrapeAll(ctx context.Context) []scholarship.Scholarship
}

// Picker selects scholarships for a user.
type Picker interface {
	Recommend(ctx context.Context, user profile.User, scholarships []scholarship.Scholarship) ([]scholarship.Recommendation, error)
}

// Deps bundles everything the HTTP layer depends on.
type Deps struct {
	Memory      *essay.Memory
	Engine      EssayGenerator
	Fusion      InputFuser
	Users       UserDirectory
	Scraper     ListingScraper
	Catalog     CatalogService
	Recommender Picker
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/scrape-sync", ScrapeSyncHandler(d.Scraper, d.Catalog))
		api.GET("/ai/recommend-scholarships/:userId", RecommendHandler(d.Users, d.Catalog, d.Recommender))

		api.POST("/essay/:userId", EssayHandler(d.Fusion, d.Engine, d.Memory))
		api.POST("/essay/:userId/clear", ClearEssayHandler(d.Memory))
		api.POST("/compare", CompareHandler(d.Engine))
	}
	return r
}
