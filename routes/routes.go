package routes

import (
	"github.com/Tobix2/Calorika-sub000/controllers"
	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(hub *services.ChatHub) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Gateway calls this; authentication is the payload signature.
	r.POST("/billing/webhook", controllers.PaymentWebhook)

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		user := api.Group("/user")
		{
			user.GET("/profile", controllers.GetProfile)
			user.PUT("/profile", controllers.UpdateProfile)
			user.GET("/notifications", controllers.ListNotifications)
		}

		foods := api.Group("/foods")
		{
			foods.POST("", controllers.CreateFood)
			foods.GET("", controllers.ListFoods)
			foods.PUT("/:id", controllers.UpdateFood)
			foods.DELETE("/:id", controllers.DeleteFood)
		}

		meals := api.Group("/custom-meals")
		{
			meals.POST("", controllers.CreateCustomMeal)
			meals.GET("", controllers.ListCustomMeals)
			meals.GET("/:id", controllers.GetCustomMeal)
			meals.DELETE("/:id", controllers.DeleteCustomMeal)
		}

		plans := api.Group("/plans")
		{
			plans.GET("", controllers.GetWeek)
			plans.GET("/bootstrap", controllers.Bootstrap)
			plans.PUT("/:date", controllers.UpdateDay)
			plans.POST("/flush", controllers.FlushPlans)
		}

		goals := api.Group("/goals")
		{
			goals.GET("", controllers.GetGoals)
			goals.PUT("", controllers.UpdateGoals)
		}

		weights := api.Group("/weights")
		{
			weights.POST("", controllers.UpsertWeight)
			weights.GET("", controllers.ListWeights)
		}

		ai := api.Group("/ai")
		{
			ai.POST("/recommendation", controllers.RecommendCalories)
			ai.POST("/meal-plan", controllers.GenerateMealPlan)
		}

		clients := api.Group("/clients")
		{
			clients.POST("/invite", controllers.InviteClient)
			clients.POST("/invites/:id/accept", controllers.AcceptInvite)
			clients.GET("", controllers.ListClients)
			clients.DELETE("/:id", controllers.RemoveClient)
		}

		chat := api.Group("/chat")
		{
			chat.GET("/ws", controllers.ChatSocket(hub))
			chat.GET("/history/:id", controllers.ChatHistory(hub))
			chat.POST("/messages", controllers.SendChatMessage(hub))
		}

		billing := api.Group("/billing")
		{
			billing.POST("/checkout-session", controllers.CreateCheckoutSession)
		}
	}

	return r
}
