package response

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, businessCode int, message string) {
	FailWithData(c, businessCode, message, nil)
}

// FailWithData 失败并附带明细
func FailWithData(c *gin.Context, businessCode int, message string, data interface{}) {
	c.AbortWithStatusJSON(businessCode, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    data,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrParamInvalid.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "invalid json body")
		return
	}

	code, target, ok := service.Code(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "unhandled error", "err", err, "path", c.FullPath())
		Fail(c, code, target.Error())
		return
	}

	var de *service.DetailError
	if errors.As(err, &de) {
		FailWithData(c, code, target.Error(), gin.H{"details": de.Details})
		return
	}
	Fail(c, code, target.Error())
}
