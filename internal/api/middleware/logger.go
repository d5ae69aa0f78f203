package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints method, path, status, latency and, once authenticated, the company.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		if companyID, ok := GetCompanyID(c); ok {
			log.Printf("%s %s -> %d (%s) company=%d", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency, companyID)
			return
		}
		log.Printf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency)
	}
}
