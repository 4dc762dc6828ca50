package routes

import (
	"net/http"

	"voyagerie/auth"
	"voyagerie/branding"
	"voyagerie/itinerary"
	"voyagerie/live"
	"voyagerie/middleware"
	"voyagerie/pdf"
	"voyagerie/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", auth.LogoutUser)
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(auth.RefreshToken))
}

func AddItineraryRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/itineraries", middleware.Authenticate(itinerary.GetItineraries))              //Fetch the owner's itineraries
	router.POST("/api/itineraries", middleware.Authenticate(itinerary.CreateItinerary))            //Create a new itinerary
	router.GET("/api/itineraries/all/:id", middleware.Authenticate(itinerary.GetItinerary))        //Fetch a single itinerary with items
	router.PUT("/api/itineraries/:id", middleware.Authenticate(itinerary.UpdateItinerary(hub)))    //Update an itinerary and replace its items
	router.DELETE("/api/itineraries/:id", middleware.Authenticate(itinerary.DeleteItinerary(hub))) //Delete an itinerary
	router.GET("/api/itineraries/search", middleware.Authenticate(itinerary.SearchItineraries))    //Search the owner's itineraries
	router.GET("/api/itineraries/all/:id/share", middleware.Authenticate(itinerary.GetShareInfo))  //Share link for an itinerary
	router.GET("/api/itineraries/all/:id/share/qr", middleware.Authenticate(itinerary.GetShareQR)) //Share link QR code
}

func AddShareRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/share/:token", rateLimiter.Limit(itinerary.GetSharedItinerary)) //Public read-only access
}

func AddPDFRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, generator *pdf.Generator) {
	router.GET("/api/itineraries/all/:id/pdf", middleware.Authenticate(pdf.ExportItinerary(generator)))
	router.GET("/api/share/:token/pdf", rateLimiter.Limit(pdf.ExportShared(generator)))
}

func AddBrandingRoutes(router *httprouter.Router) {
	router.POST("/api/branding/logo", middleware.Authenticate(branding.UploadLogo))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/itineraries/:id", live.WebSocketHandler(hub))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/branding/*filepath", http.Dir("static/branding"))
	router.ServeFiles("/static/fonts/*filepath", http.Dir("static/fonts"))
}
