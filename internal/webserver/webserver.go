package webserver

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/granjalabs/granjapos/config"
	"go.uber.org/zap"
)

var server *WebServer

type WebServer struct {
	root   *echo.Echo
	config *config.AppConfig
}

// jsonSerializer plugs json-iterator into echo's request/response codec.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

func Init(cfg *config.AppConfig) *WebServer {
	s := &WebServer{config: cfg}
	s.root = echo.New()
	s.root.HideBanner = true
	s.root.Debug = cfg.Web.Debug
	s.root.JSONSerializer = jsonSerializer{}
	s.root.Use(middleware.Recover())
	s.root.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))
	s.root.HTTPErrorHandler = func(err error, c echo.Context) {
		zap.L().Error("http error", zap.String("path", c.Path()), zap.Error(err))
		s.root.DefaultHTTPErrorHandler(err, c)
	}
	server = s
	return s
}

// Listen starts the admin api server, blocking until shutdown.
func Listen() error {
	addr := fmt.Sprintf("%s:%d", server.config.Web.Host, server.config.Web.Port)
	zap.L().Info("starting admin api server", zap.String("addr", addr))
	return server.root.Start(addr)
}

// ApiGET register a GET route under /api
func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.GET("/api"+path, h, m...)
}

// ApiPOST register a POST route under /api
func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.POST("/api"+path, h, m...)
}

// ApiPUT register a PUT route under /api
func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.PUT("/api"+path, h, m...)
}

// ApiDELETE register a DELETE route under /api
func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.root.DELETE("/api"+path, h, m...)
}
