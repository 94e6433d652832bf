package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	contacthandler "portfolio_chart/internal/feature/contact/transport/handler"
	charthandler "portfolio_chart/internal/feature/pricechart/transport/handler"
	"portfolio_chart/internal/platform/http/handler"
)

func NewRouter(chart *charthandler.ChartHandler, contact *contacthandler.ContactHandler,
	origins []string, checks ...handler.Check) *gin.Engine {
	r := gin.Default()

	// The portfolio page calls the API from another origin
	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.ExposeHeaders = []string{"Content-Length"}
	r.Use(cors.New(config))

	health := handler.Health(checks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	charts := r.Group("/charts/:id")
	{
		charts.GET("", chart.Render)
		charts.GET("/series", chart.Series)
		charts.GET("/readout", chart.Readout)
		charts.POST("/pointer", chart.PointerMove)
		charts.DELETE("/pointer", chart.PointerLeave)
	}

	r.GET("/contact/copy", contact.State)
	r.POST("/contact/copy", contact.Copy)

	return r
}
