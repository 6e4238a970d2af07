package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		// 处理请求
		c.Next()

		// 记录日志，附带第一个业务错误
		latency := time.Since(start)
		status := c.Writer.Status()
		if errMsg := c.Errors.ByType(gin.ErrorTypePrivate).Last(); errMsg != nil {
			log.Printf("[HTTP] %s %s %s %d %v err=%v", c.Request.Method, path, c.ClientIP(), status, latency, errMsg.Err)
			return
		}
		log.Printf("[HTTP] %s %s %s %d %v",
			c.Request.Method,
			path,
			c.ClientIP(),
			status,
			latency,
		)
	}
}
