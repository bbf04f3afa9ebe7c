package middleware

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// Recovery catches handler panics, appends the stack to error.log, and
// answers with a generic 500. Anything a handler did not translate into the
// error taxonomy ends up here.
func Recovery(logPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				log.Printf("panic recovered: %v\n%s", r, stack)
				appendErrorLog(logPath, fmt.Sprintf("%v\n%s", r, stack))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

func appendErrorLog(logPath, message string) {
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("could not open %s: %v", logPath, err)
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s - %s\n", time.Now().Format(time.RFC3339), message)
}
