package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-tracker/pkg/utils"
)

const KeyRequestID = "X-Request-ID"

// 上游传入的 id 只接受短的可打印字符串，否则重新生成
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > 128 {
		return false
	}
	return !strings.ContainsFunc(rid, func(r rune) bool { return r < 0x21 || r > 0x7e })
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if !validRequestID(rid) {
			rid = utils.NewID()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}

func RequestIDOf(c *gin.Context) string { return c.GetString(KeyRequestID) }
