package response

import "github.com/gin-gonic/gin"

// Resp is the error body. Successful responses are written unwrapped.
type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// Error builds an error body; customMsg overrides the default text.
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Resp{Code: code, Msg: msg, Data: struct{}{}}
}

// Abort writes the error body with code as HTTP status and stops the chain.
func Abort(c *gin.Context, code int, customMsg string) {
	c.AbortWithStatusJSON(code, Error(code, customMsg))
}
