package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Recipes  RecipeService
	Users    UserService
	Resolver IdentityResolver
	Sessions interface {
		SessionReader
		SessionIssuer
	}
	Logger     *zap.Logger
	Production bool
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHandlers := NewUserHandlers(deps.Users, deps.Sessions, deps.Logger)
	usersGroup := router.Group("/users")
	{
		usersGroup.POST("/new", userHandlers.Register)
		usersGroup.POST("/login", userHandlers.Login)
		usersGroup.GET("/logout", userHandlers.Logout)
	}

	recipeHandlers := NewRecipeHandlers(deps.Recipes, deps.Logger)
	authRequired := RequireIdentity(deps.Resolver, deps.Sessions, deps.Logger)
	recipesGroup := router.Group("/recipes")
	{
		// Share links and the public catalogue work without a session.
		recipesGroup.GET("/public", recipeHandlers.ListPublic)
		recipesGroup.GET("/public/:r_id", recipeHandlers.GetPublic)
		recipesGroup.GET("/share", recipeHandlers.Share)

		recipesGroup.POST("/new", authRequired, recipeHandlers.Create)
		recipesGroup.GET("/list", authRequired, recipeHandlers.List)
		recipesGroup.GET("/ingredient/:ingredient", authRequired, recipeHandlers.ByIngredient)
		recipesGroup.GET("/weekly", authRequired, recipeHandlers.Weekly)
		recipesGroup.POST("/weekly", authRequired, recipeHandlers.Choose)
		recipesGroup.GET("/chosen", authRequired, recipeHandlers.Chosen)
		recipesGroup.DELETE("/weeklyreset", authRequired, recipeHandlers.ResetChosen)
		recipesGroup.DELETE("/remove/:r_id", authRequired, recipeHandlers.Remove)
		recipesGroup.PUT("/like", authRequired, recipeHandlers.Like)
		recipesGroup.GET("/:r_id", authRequired, recipeHandlers.Get)
	}

	return router
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
