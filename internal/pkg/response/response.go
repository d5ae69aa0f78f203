package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Numeric codes carried in the envelope. HTTP status is always 200.
const (
	CodeSuccess            = 0
	CodeParamError         = 1000
	CodeAuthFailed         = 1001
	CodePermissionDenied   = 1002
	CodeResourceNotFound   = 1003
	CodeQuotaExceeded      = 1004
	CodeFeatureLocked      = 1006
	CodeServerError        = 5000
	CodeBackendUnavailable = 5003
)

var codeMessages = map[int]string{
	CodeSuccess:            "success",
	CodeParamError:         "Parâmetros inválidos",
	CodeAuthFailed:         "Falha na autenticação",
	CodePermissionDenied:   "Permissão negada",
	CodeResourceNotFound:   "Recurso não encontrado",
	CodeQuotaExceeded:      "Limite do plano atingido",
	CodeFeatureLocked:      "Recurso indisponível no seu plano",
	CodeServerError:        "Erro interno do servidor",
	CodeBackendUnavailable: "Serviço temporariamente indisponível",
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type PageData struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    interface{} `json:"items"`
}

// MessageFor returns the default message of code.
func MessageFor(code int) string {
	return codeMessages[code]
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: MessageFor(CodeSuccess),
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

func SuccessPage(c *gin.Context, total int64, page, pageSize int, items interface{}) {
	Success(c, PageData{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	})
}

// Error writes a failure envelope; an empty message falls back to the code's default.
func Error(c *gin.Context, code int, message string) {
	ErrorWithData(c, code, message, nil)
}

// ErrorWithData writes a failure envelope that still carries a payload, such as
// the subscription status alongside a quota error.
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	if message == "" {
		message = MessageFor(code)
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

// QuotaError reports a reached appointment limit together with the current status.
func QuotaError(c *gin.Context, message string, status interface{}) {
	ErrorWithData(c, CodeQuotaExceeded, message, status)
}

func FeatureLockedError(c *gin.Context, message string) {
	Error(c, CodeFeatureLocked, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}

func UnavailableError(c *gin.Context, message string) {
	Error(c, CodeBackendUnavailable, message)
}
